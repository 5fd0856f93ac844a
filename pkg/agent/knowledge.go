package agent

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
)

// KnowledgeAgent answers questions grounded in the retrieval corpus. The
// latest user message drives retrieval; whatever context comes back is
// prepended to the history as a system message.
type KnowledgeAgent struct {
	client    interfaces.GenerationClient
	retriever interfaces.Retriever
	modelID   types.ModelID
}

var _ Agent = &KnowledgeAgent{}

// NewKnowledgeAgent creates a retrieval-augmented answer agent
func NewKnowledgeAgent(client interfaces.GenerationClient, retriever interfaces.Retriever, modelID types.ModelID) (*KnowledgeAgent, error) {
	if client == nil {
		return nil, goerr.New("generation client is required")
	}
	if retriever == nil {
		return nil, goerr.New("retriever is required")
	}
	if modelID == "" {
		modelID = types.DefaultGeneratorModel
	}

	return &KnowledgeAgent{
		client:    client,
		retriever: retriever,
		modelID:   modelID,
	}, nil
}

func (a *KnowledgeAgent) Generate(ctx context.Context, history []model.ChatMessage) (string, error) {
	var query string
	if len(history) > 0 {
		query = history[len(history)-1].Content
	}

	snippets, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		errutil.Log(ctx, err, "retrieval failed, answering without context")
		snippets = nil
	}

	contents := make([]string, 0, len(snippets))
	for _, s := range snippets {
		contents = append(contents, s.Content)
	}

	messages := make([]model.ChatMessage, 0, len(history)+1)
	messages = append(messages, model.SystemMessage(strings.Join(contents, "\n")))
	messages = append(messages, history...)

	resp, err := a.client.GenerateResponse(ctx, a.modelID, knowledgeInstruction, messages)
	if err != nil {
		return "", goerr.Wrap(ErrGenerationFailed, "knowledge agent call failed", goerr.V("cause", err))
	}

	return resp, nil
}
