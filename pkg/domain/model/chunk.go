package model

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingDimension is the dimension of the embedding vector used for
// corpus chunks and retrieval queries.
const EmbeddingDimension = 768

// ChunkID is a UUID-based identifier for a corpus chunk
type ChunkID string

// NewChunkID generates a new UUID v4 ChunkID
func NewChunkID() ChunkID {
	return ChunkID(uuid.New().String())
}

// Chunk is one embedded fragment of a knowledge source document. The
// retrieval service splits fetched pages into chunks, embeds them, and the
// knowledge repository serves similarity search over them.
type Chunk struct {
	ID        ChunkID
	Source    string // URL of the page the chunk was extracted from
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
