package interfaces

import (
	"context"
	"time"

	"github.com/hatchpay/concierge/pkg/domain/model"
)

// KnowledgeRepository defines the interface for the retrieval corpus:
// embedded chunks of the configured knowledge sources plus the refresh
// bookkeeping that gates re-ingestion.
type KnowledgeRepository interface {
	// ReplaceChunks atomically swaps all chunks for a source with the
	// given set. Used by corpus refresh so stale chunks never linger.
	ReplaceChunks(ctx context.Context, source string, chunks []*model.Chunk) error

	// FindByEmbedding performs vector similarity search using cosine
	// distance. Returns up to limit chunks most similar to the embedding.
	FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Chunk, error)

	// LastRefreshedAt returns the time of the last completed corpus
	// refresh. The zero time means the corpus was never ingested.
	LastRefreshedAt(ctx context.Context) (time.Time, error)

	// SetLastRefreshedAt records a completed corpus refresh
	SetLastRefreshedAt(ctx context.Context, t time.Time) error
}
