package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/repository/firestore"
	"github.com/hatchpay/concierge/pkg/repository/memory"
)

func testEmbedding(dominant int) []float32 {
	emb := make([]float32, model.EmbeddingDimension)
	for i := range emb {
		emb[i] = 0.01
	}
	emb[dominant] = 1.0
	return emb
}

func newTestChunk(source, content string, dominant int) *model.Chunk {
	return &model.Chunk{
		ID:        model.NewChunkID(),
		Source:    source,
		Content:   content,
		Embedding: testEmbedding(dominant),
		CreatedAt: time.Now().UTC(),
	}
}

func runKnowledgeRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("find by embedding returns closest chunks first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		chunks := []*model.Chunk{
			newTestChunk("https://docs.example.com/refunds", "Refunds are issued within 5 business days.", 0),
			newTestChunk("https://docs.example.com/refunds", "Shipping takes 2 to 4 days inside the EU.", 1),
			newTestChunk("https://docs.example.com/refunds", "Contact support to change your billing address.", 2),
		}
		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, "https://docs.example.com/refunds", chunks)).Required()

		found, err := repo.Knowledge().FindByEmbedding(ctx, testEmbedding(1), 2)
		gt.NoError(t, err).Required()

		gt.Array(t, found).Length(2).Required()
		gt.Value(t, found[0].Content).Equal("Shipping takes 2 to 4 days inside the EU.")
	})

	t.Run("replace chunks swaps all chunks of a source", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		source := "https://docs.example.com/faq"

		initial := []*model.Chunk{
			newTestChunk(source, "old content", 0),
			newTestChunk(source, "stale content", 1),
		}
		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, source, initial)).Required()

		replacement := []*model.Chunk{
			newTestChunk(source, "fresh content", 2),
		}
		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, source, replacement)).Required()

		found, err := repo.Knowledge().FindByEmbedding(ctx, testEmbedding(0), 10)
		gt.NoError(t, err).Required()

		gt.Array(t, found).Length(1).Required()
		gt.Value(t, found[0].Content).Equal("fresh content")
	})

	t.Run("replace chunks keeps other sources intact", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, "https://a.example.com", []*model.Chunk{
			newTestChunk("https://a.example.com", "about a", 0),
		})).Required()
		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, "https://b.example.com", []*model.Chunk{
			newTestChunk("https://b.example.com", "about b", 1),
		})).Required()

		gt.NoError(t, repo.Knowledge().ReplaceChunks(ctx, "https://a.example.com", nil)).Required()

		found, err := repo.Knowledge().FindByEmbedding(ctx, testEmbedding(1), 10)
		gt.NoError(t, err).Required()

		gt.Array(t, found).Length(1).Required()
		gt.Value(t, found[0].Content).Equal("about b")
	})

	t.Run("empty corpus yields no results", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		found, err := repo.Knowledge().FindByEmbedding(ctx, testEmbedding(0), 5)
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(0)
	})

	t.Run("last refreshed at round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		initial, err := repo.Knowledge().LastRefreshedAt(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, initial.IsZero()).True()

		refreshedAt := time.Now().UTC().Truncate(time.Second)
		gt.NoError(t, repo.Knowledge().SetLastRefreshedAt(ctx, refreshedAt)).Required()

		got, err := repo.Knowledge().LastRefreshedAt(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, got.Equal(refreshedAt)).True()
	})
}

func TestKnowledgeRepository_Memory(t *testing.T) {
	runKnowledgeRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestKnowledgeRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runKnowledgeRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
			firestore.WithCollectionPrefix(fmt.Sprintf("test-%s-", types.NewTicketID())),
			firestore.WithChatMemory(memory.New().ChatMemory()),
		)
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			if err := repo.Close(); err != nil {
				t.Logf("failed to close firestore repository: %v", err)
			}
		})
		return repo
	})
}
