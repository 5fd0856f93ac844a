package interfaces

import (
	"context"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// ChatMemoryRepository defines the interface for per-user conversation
// persistence. Conversations are capped to the most recent messages and
// expire after a retention window; both are backend concerns invisible to
// callers beyond the trimmed read results.
type ChatMemoryRepository interface {
	// Append adds a message to the end of the user's conversation
	Append(ctx context.Context, userID types.UserID, msg model.ChatMessage) error

	// GetConversation returns up to limit most recent messages, oldest
	// first. limit <= 0 means the backend's retention cap.
	GetConversation(ctx context.Context, userID types.UserID, limit int) ([]model.ChatMessage, error)

	// Clear removes the user's entire conversation
	Clear(ctx context.Context, userID types.UserID) error
}
