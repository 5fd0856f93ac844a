package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

const (
	defaultKeyPrefix = "chat:memory:"
	chatMemoryLimit  = 50
	chatMemoryTTL    = 7 * 24 * time.Hour
)

type chatMemoryRepository struct {
	client *goredis.Client
	prefix string
}

func newChatMemoryRepository(client *goredis.Client) *chatMemoryRepository {
	return &chatMemoryRepository{
		client: client,
		prefix: defaultKeyPrefix,
	}
}

func (r *chatMemoryRepository) key(userID types.UserID) string {
	return r.prefix + userID.String()
}

// Append pushes the message onto the user's list, trims to the retention
// cap, and resets the expiry window.
func (r *chatMemoryRepository) Append(ctx context.Context, userID types.UserID, msg model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal chat message")
	}

	key := r.key(userID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -chatMemoryLimit, -1)
	pipe.Expire(ctx, key, chatMemoryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return goerr.Wrap(err, "failed to append chat message", goerr.V("userID", userID))
	}

	return nil
}

func (r *chatMemoryRepository) GetConversation(ctx context.Context, userID types.UserID, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > chatMemoryLimit {
		limit = chatMemoryLimit
	}

	raw, err := r.client.LRange(ctx, r.key(userID), int64(-limit), -1).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read conversation", goerr.V("userID", userID))
	}

	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal chat message", goerr.V("userID", userID))
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (r *chatMemoryRepository) Clear(ctx context.Context, userID types.UserID) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return goerr.Wrap(err, "failed to clear conversation", goerr.V("userID", userID))
	}
	return nil
}
