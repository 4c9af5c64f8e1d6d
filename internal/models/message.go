package models

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies who sent a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one bubble in the conversation
type Message struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// IsUser reports whether the message was typed by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
