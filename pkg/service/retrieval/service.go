package retrieval

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
	"github.com/hatchpay/concierge/pkg/utils/logging"
)

const (
	defaultStaleAfter  = 24 * time.Hour
	defaultSearchLimit = 5
	fetchTimeout       = 30 * time.Second
)

// Service retrieves context snippets for a query from the knowledge corpus.
// Before searching it re-ingests the configured sources when the corpus is
// older than the staleness window. Retrieval is strictly best-effort: any
// internal failure is logged and the caller gets an empty context.
type Service struct {
	repo     interfaces.KnowledgeRepository
	embedder interfaces.EmbeddingClient
	sources  []string

	httpClient  *http.Client
	staleAfter  time.Duration
	searchLimit int
	now         func() time.Time

	refreshMu sync.Mutex
}

var _ interfaces.Retriever = &Service{}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithHTTPClient overrides the HTTP client used to fetch knowledge sources
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithStaleAfter overrides the corpus staleness window
func WithStaleAfter(d time.Duration) Option {
	return func(s *Service) {
		s.staleAfter = d
	}
}

// WithSearchLimit overrides the number of chunks returned per query
func WithSearchLimit(limit int) Option {
	return func(s *Service) {
		s.searchLimit = limit
	}
}

// WithClock overrides the clock used for staleness checks
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a retrieval service over the given corpus and sources
func New(repo interfaces.KnowledgeRepository, embedder interfaces.EmbeddingClient, sources []string, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, goerr.New("knowledge repository is required")
	}
	if embedder == nil {
		return nil, goerr.New("embedding client is required")
	}

	s := &Service{
		repo:        repo,
		embedder:    embedder,
		sources:     sources,
		httpClient:  &http.Client{Timeout: fetchTimeout},
		staleAfter:  defaultStaleAfter,
		searchLimit: defaultSearchLimit,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Retrieve returns the snippets most similar to the query. Failures in
// refresh, embedding, or search degrade to an empty result so answer
// generation can proceed without retrieval context.
func (s *Service) Retrieve(ctx context.Context, query string) ([]model.ContextSnippet, error) {
	if err := s.refreshIfStale(ctx); err != nil {
		errutil.Log(ctx, err, "corpus refresh failed, searching existing corpus")
	}

	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		errutil.Log(ctx, err, "failed to embed query, continuing without context")
		return nil, nil
	}
	if len(embeddings) == 0 {
		return nil, nil
	}

	chunks, err := s.repo.FindByEmbedding(ctx, embeddings[0], s.searchLimit)
	if err != nil {
		errutil.Log(ctx, err, "similarity search failed, continuing without context")
		return nil, nil
	}

	snippets := make([]model.ContextSnippet, 0, len(chunks))
	for _, chunk := range chunks {
		snippets = append(snippets, model.ContextSnippet{
			Content: chunk.Content,
			Source:  chunk.Source,
		})
	}

	return snippets, nil
}

// Refresh re-ingests all configured sources regardless of staleness
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refresh(ctx)
}

// refreshIfStale re-ingests the sources when the corpus is older than the
// staleness window. Concurrent callers serialize; the ones that waited see
// the fresh timestamp and skip.
func (s *Service) refreshIfStale(ctx context.Context) error {
	if len(s.sources) == 0 {
		return nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	refreshedAt, err := s.repo.LastRefreshedAt(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to check corpus age")
	}
	if s.now().Sub(refreshedAt) < s.staleAfter {
		return nil
	}

	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) error {
	logger := logging.From(ctx)
	logger.Info("refreshing knowledge corpus", "sources", len(s.sources))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, source := range s.sources {
		eg.Go(func() error {
			if err := s.ingestSource(egCtx, source); err != nil {
				// A broken source must not block the others
				errutil.Log(egCtx, err, "failed to ingest source, skipping")
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "corpus refresh aborted")
	}

	if err := s.repo.SetLastRefreshedAt(ctx, s.now()); err != nil {
		return goerr.Wrap(err, "failed to record corpus refresh")
	}

	logger.Info("knowledge corpus refreshed")
	return nil
}

// ingestSource fetches one source, splits it, embeds the chunks, and swaps
// them into the corpus.
func (s *Service) ingestSource(ctx context.Context, source string) error {
	text, err := fetchDocument(ctx, s.httpClient, source)
	if err != nil {
		return err
	}

	pieces := splitText(text, chunkSize, chunkOverlap)
	if len(pieces) == 0 {
		return s.repo.ReplaceChunks(ctx, source, nil)
	}

	embeddings, err := s.embedder.Embed(ctx, pieces)
	if err != nil {
		return goerr.Wrap(err, "failed to embed chunks", goerr.V("source", source))
	}

	now := s.now().UTC()
	chunks := make([]*model.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, &model.Chunk{
			ID:        model.NewChunkID(),
			Source:    source,
			Content:   piece,
			Embedding: embeddings[i],
			CreatedAt: now,
		})
	}

	if err := s.repo.ReplaceChunks(ctx, source, chunks); err != nil {
		return goerr.Wrap(err, "failed to store chunks", goerr.V("source", source))
	}

	logging.From(ctx).Info("ingested knowledge source", "source", source, "chunks", len(chunks))
	return nil
}
