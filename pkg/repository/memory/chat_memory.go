package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

const (
	defaultChatMemoryLimit = 50
	chatMemoryTTL          = 7 * 24 * time.Hour
)

type conversation struct {
	messages []model.ChatMessage
	touched  time.Time
}

type chatMemoryRepository struct {
	mu            sync.RWMutex
	conversations map[types.UserID]*conversation
	limit         int
	ttl           time.Duration
	now           func() time.Time
}

func newChatMemoryRepository() *chatMemoryRepository {
	return &chatMemoryRepository{
		conversations: make(map[types.UserID]*conversation),
		limit:         defaultChatMemoryLimit,
		ttl:           chatMemoryTTL,
		now:           time.Now,
	}
}

// live returns the conversation if it exists and has not expired. Expiry
// mirrors the Redis backend: the whole key lapses ttl after the last append.
func (r *chatMemoryRepository) live(userID types.UserID) *conversation {
	conv, ok := r.conversations[userID]
	if !ok {
		return nil
	}
	if r.now().Sub(conv.touched) > r.ttl {
		delete(r.conversations, userID)
		return nil
	}
	return conv
}

func (r *chatMemoryRepository) Append(ctx context.Context, userID types.UserID, msg model.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := r.live(userID)
	if conv == nil {
		conv = &conversation{}
		r.conversations[userID] = conv
	}

	conv.messages = append(conv.messages, msg)
	if len(conv.messages) > r.limit {
		conv.messages = conv.messages[len(conv.messages)-r.limit:]
	}
	conv.touched = r.now()

	return nil
}

func (r *chatMemoryRepository) GetConversation(ctx context.Context, userID types.UserID, limit int) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := r.live(userID)
	if conv == nil {
		return []model.ChatMessage{}, nil
	}

	if limit <= 0 || limit > len(conv.messages) {
		limit = len(conv.messages)
	}

	result := make([]model.ChatMessage, limit)
	copy(result, conv.messages[len(conv.messages)-limit:])
	return result, nil
}

func (r *chatMemoryRepository) Clear(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conversations, userID)
	return nil
}
