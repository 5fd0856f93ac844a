package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hatchpay/concierge/pkg/domain/model"
)

type knowledgeRepository struct {
	mu          sync.RWMutex
	chunks      map[string][]*model.Chunk // keyed by source URL
	refreshedAt time.Time
}

func newKnowledgeRepository() *knowledgeRepository {
	return &knowledgeRepository{
		chunks: make(map[string][]*model.Chunk),
	}
}

func copyChunk(c *model.Chunk) *model.Chunk {
	copied := &model.Chunk{
		ID:        c.ID,
		Source:    c.Source,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.Embedding != nil {
		copied.Embedding = make([]float32, len(c.Embedding))
		copy(copied.Embedding, c.Embedding)
	}
	return copied
}

func (r *knowledgeRepository) ReplaceChunks(ctx context.Context, source string, chunks []*model.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]*model.Chunk, 0, len(chunks))
	for _, c := range chunks {
		copied := copyChunk(c)
		if copied.ID == "" {
			copied.ID = model.NewChunkID()
		}
		if copied.CreatedAt.IsZero() {
			copied.CreatedAt = time.Now().UTC()
		}
		stored = append(stored, copied)
	}

	r.chunks[source] = stored
	return nil
}

func (r *knowledgeRepository) FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		chunk *model.Chunk
		score float64
	}

	var candidates []scored
	for _, chunks := range r.chunks {
		for _, c := range chunks {
			if len(c.Embedding) == 0 {
				continue
			}
			s := cosineSimilarity(embedding, c.Embedding)
			candidates = append(candidates, scored{chunk: copyChunk(c), score: s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.Chunk, 0, limit)
	for _, c := range candidates[:limit] {
		result = append(result, c.chunk)
	}

	return result, nil
}

func (r *knowledgeRepository) LastRefreshedAt(ctx context.Context) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.refreshedAt, nil
}

func (r *knowledgeRepository) SetLastRefreshedAt(ctx context.Context, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refreshedAt = t
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
