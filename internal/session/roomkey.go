package session

// Room keys are the single source of truth for room naming. Join paths,
// broadcasters and any future introspection must build keys through these
// functions only.

// CollabRoomKey names the room for a chapter's collaborative editor.
func CollabRoomKey(slug string) string {
	return "content_" + slug
}

// ChatRoomKey names the private room for a pair of users. It is
// order-independent: both participants resolve to the same key.
func ChatRoomKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "chat_" + userA + "_" + userB
}
