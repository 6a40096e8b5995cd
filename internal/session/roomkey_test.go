package session

import "testing"

func TestChatRoomKeyIsOrderIndependent(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"bob", "alice"},
		{"1", "20"},
		{"20", "1"},
	}
	for _, p := range pairs {
		if ChatRoomKey(p[0], p[1]) != ChatRoomKey(p[1], p[0]) {
			t.Fatalf("ChatRoomKey(%q,%q) != ChatRoomKey(%q,%q)", p[0], p[1], p[1], p[0])
		}
	}

	if got := ChatRoomKey("bob", "alice"); got != "chat_alice_bob" {
		t.Fatalf("unexpected chat room key: %s", got)
	}
}

func TestChatRoomKeyDistinguishesPairs(t *testing.T) {
	if ChatRoomKey("alice", "bob") == ChatRoomKey("alice", "carol") {
		t.Fatalf("different pairs must map to different rooms")
	}
}

func TestCollabRoomKey(t *testing.T) {
	if got := CollabRoomKey("my-chapter"); got != "content_my-chapter" {
		t.Fatalf("unexpected collab room key: %s", got)
	}
}
