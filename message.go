package supernova

import "time"

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Attachment is an image attached to a user message. Data holds the raw
// bytes encoded as base64, ready for transport. Immutable once attached.
type Attachment struct {
	MimeType string
	Data     string
}

// Message is one entry in a session's conversation.
//
// A user message is immutable once created. An assistant message starts
// with empty content and is updated in place while the response streams:
// each update replaces Content with the full accumulated text, so an
// observer only ever sees monotonically growing prefixes of the final
// text. It reaches a terminal state exactly once: either settled content
// or IsError with a fixed user-facing error string.
type Message struct {
	ID          string
	Role        Role
	Content     string
	Timestamp   time.Time
	Attachments []Attachment
	IsError     bool
}

// MessagePatch describes an in-place update to a message. Nil fields are
// left unchanged.
type MessagePatch struct {
	Content *string
	IsError *bool
}
