package models

/*** Collaboration wire frames ***/

// CollabInbound is the only message a collaboration client sends: the full
// replacement content of the chapter.
type CollabInbound struct {
	Content string `json:"content"`
}

type CollabFrameType string

const (
	FrameInitialContent CollabFrameType = "initial_content"
	FrameContentUpdate  CollabFrameType = "content_update"
)

// CollabFrame is an outbound collaboration event. Construct via
// InitialContent or ContentUpdate so the type tag always matches the payload.
type CollabFrame struct {
	Type    CollabFrameType `json:"type"`
	Content string          `json:"content"`
}

func InitialContent(content string) CollabFrame {
	return CollabFrame{Type: FrameInitialContent, Content: content}
}

func ContentUpdate(content string) CollabFrame {
	return CollabFrame{Type: FrameContentUpdate, Content: content}
}

/*** Chat wire frames ***/

// Attachment is an inline file carried with a chat message. Data is base64;
// the media collaborator turns it into a stable URL before anything is
// persisted or broadcast.
type Attachment struct {
	Name string `json:"name,omitempty"`
	Data string `json:"data"`
}

type ChatInbound struct {
	Message string      `json:"message"`
	File    *Attachment `json:"file,omitempty"`
}

// ChatEvent is the outbound message-delivered frame sent to every member of
// the chat room, the sender's own tabs included.
type ChatEvent struct {
	Message        string  `json:"message"`
	ImageURL       *string `json:"image_url"`
	Sender         string  `json:"sender"`
	ProfilePicture *string `json:"profile_picture"`
	FullName       string  `json:"full_name"`
}

// ErrorFrame rejects a join or reports a protocol-level failure back to the
// offending connection only.
type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewErrorFrame(msg string) ErrorFrame { return ErrorFrame{Type: "error", Error: msg} }
