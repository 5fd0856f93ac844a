package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// Service adapts a gollem LLM client to the generation and embedding
// interfaces the agents consume. Each GenerateResponse call runs in a fresh
// session; conversation state lives in the chat memory repository, not in
// the LLM session.
type Service struct {
	defaultClient gollem.LLMClient
	clients       map[types.ModelID]gollem.LLMClient
}

var _ interfaces.GenerationClient = &Service{}
var _ interfaces.EmbeddingClient = &Service{}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithModel registers a dedicated client for a model ID. Requests for
// unregistered model IDs fall back to the default client.
func WithModel(id types.ModelID, client gollem.LLMClient) Option {
	return func(s *Service) {
		s.clients[id] = client
	}
}

// New creates a new LLM service backed by the given gollem client
func New(defaultClient gollem.LLMClient, opts ...Option) (*Service, error) {
	if defaultClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	s := &Service{
		defaultClient: defaultClient,
		clients:       make(map[types.ModelID]gollem.LLMClient),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Service) clientFor(id types.ModelID) gollem.LLMClient {
	if client, ok := s.clients[id]; ok {
		return client
	}
	return s.defaultClient
}

// GenerateResponse sends the instruction and message sequence to the model
// and returns the raw response text
func (s *Service) GenerateResponse(ctx context.Context, modelID types.ModelID, instructions string, messages []model.ChatMessage) (string, error) {
	session, err := s.clientFor(modelID).NewSession(ctx,
		gollem.WithSessionSystemPrompt(instructions),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session", goerr.V("model", modelID))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(renderTranscript(messages)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM", goerr.V("model", modelID))
	}

	if len(resp.Texts) == 0 {
		return "", goerr.New("empty response from LLM", goerr.V("model", modelID))
	}

	return strings.Join(resp.Texts, "\n"), nil
}

// renderTranscript flattens the message sequence into a role-tagged
// transcript so a single-turn session sees the whole conversation.
func renderTranscript(messages []model.ChatMessage) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// Embed returns one embedding per input text
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := s.defaultClient.GenerateEmbedding(ctx, model.EmbeddingDimension, texts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embeddings", goerr.V("count", len(texts)))
	}
	if len(embeddings) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("want", len(texts)),
			goerr.V("got", len(embeddings)))
	}

	result := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		vec := make([]float32, len(emb))
		for j, v := range emb {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}
