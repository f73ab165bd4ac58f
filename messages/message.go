package messages

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message is a single role-tagged entry in a conversation.
type Message struct {
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Timestamp strfmt.DateTime `json:"timestamp"`

	// Prevents unkeyed literals
	_ struct{}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}

func newMessage(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

// System creates a system instruction message.
func System(content string) Message {
	return newMessage(RoleSystem, content)
}

// User creates a user message.
func User(content string) Message {
	return newMessage(RoleUser, content)
}

// Assistant creates an assistant message, typically a model reply.
func Assistant(content string) Message {
	return newMessage(RoleAssistant, content)
}
