package interfaces

import (
	"context"

	"github.com/hatchpay/concierge/pkg/domain/model"
)

// Retriever returns context snippets relevant to a query. Implementations
// degrade to an empty result on internal failure; callers never need to
// handle retrieval errors beyond an empty context.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]model.ContextSnippet, error)
}
