package memory

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

func TestChatMemoryExpiry(t *testing.T) {
	now := time.Now()
	repo := New()
	repo.chatMemory.now = func() time.Time { return now }

	ctx := context.Background()
	userID := types.NewUserID()

	gt.NoError(t, repo.ChatMemory().Append(ctx, userID, model.UserMessage("hello"))).Required()

	now = now.Add(6 * 24 * time.Hour)
	messages, err := repo.ChatMemory().GetConversation(ctx, userID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, messages).Length(1)

	now = now.Add(2 * 24 * time.Hour)
	messages, err = repo.ChatMemory().GetConversation(ctx, userID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, messages).Length(0)
}

func TestChatMemoryAppendResetsExpiry(t *testing.T) {
	now := time.Now()
	repo := New()
	repo.chatMemory.now = func() time.Time { return now }

	ctx := context.Background()
	userID := types.NewUserID()

	gt.NoError(t, repo.ChatMemory().Append(ctx, userID, model.UserMessage("first"))).Required()

	now = now.Add(5 * 24 * time.Hour)
	gt.NoError(t, repo.ChatMemory().Append(ctx, userID, model.UserMessage("second"))).Required()

	// 9 days after the first append but only 4 after the last one
	now = now.Add(4 * 24 * time.Hour)
	messages, err := repo.ChatMemory().GetConversation(ctx, userID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, messages).Length(2)
}

func TestChatMemoryCustomLimit(t *testing.T) {
	repo := New(WithChatMemoryLimit(3))
	ctx := context.Background()
	userID := types.NewUserID()

	for _, content := range []string{"one", "two", "three", "four"} {
		gt.NoError(t, repo.ChatMemory().Append(ctx, userID, model.UserMessage(content))).Required()
	}

	messages, err := repo.ChatMemory().GetConversation(ctx, userID, 0)
	gt.NoError(t, err).Required()

	gt.Array(t, messages).Length(3).Required()
	gt.Value(t, messages[0].Content).Equal("two")
	gt.Value(t, messages[2].Content).Equal("four")
}
