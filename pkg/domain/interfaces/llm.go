package interfaces

import (
	"context"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// GenerationClient is the single entry point to the language model. Every
// agent issues exactly one GenerateResponse call per invocation.
type GenerationClient interface {
	// GenerateResponse sends the instruction and message sequence to the
	// named model and returns the raw response text.
	GenerateResponse(ctx context.Context, modelID types.ModelID, instructions string, messages []model.ChatMessage) (string, error)
}

// EmbeddingClient generates vector embeddings for retrieval
type EmbeddingClient interface {
	// Embed returns one embedding per input text, each of
	// model.EmbeddingDimension dimensions.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
