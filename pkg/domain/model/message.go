package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/types"
)

// ChatMessage is a single turn in a conversation. Messages are immutable
// once created; ordering within a conversation is append-only, oldest first.
type ChatMessage struct {
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
}

// UserMessage builds a user-role chat message
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: types.RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role chat message
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: types.RoleAssistant, Content: content}
}

// SystemMessage builds a system-role chat message
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: types.RoleSystem, Content: content}
}

// Validate checks if the chat message is well-formed
func (m ChatMessage) Validate() error {
	if !m.Role.IsValid() {
		return goerr.New("invalid message role", goerr.V("role", m.Role))
	}
	return nil
}
