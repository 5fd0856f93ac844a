package agent

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// Agent generates an assistant reply from the conversation history. The
// last message in the history is the one being answered.
type Agent interface {
	Generate(ctx context.Context, history []model.ChatMessage) (string, error)
}

// Set holds one agent per intent category
type Set struct {
	knowledge       Agent
	customerService Agent
}

// NewSet creates an agent set covering all intent categories
func NewSet(knowledge, customerService Agent) (*Set, error) {
	if knowledge == nil {
		return nil, goerr.New("knowledge agent is required")
	}
	if customerService == nil {
		return nil, goerr.New("customer service agent is required")
	}

	return &Set{
		knowledge:       knowledge,
		customerService: customerService,
	}, nil
}

// ForCategory returns the agent handling the given intent category
func (s *Set) ForCategory(category types.IntentCategory) (Agent, error) {
	switch category {
	case types.IntentKnowledge:
		return s.knowledge, nil
	case types.IntentCustomerService:
		return s.customerService, nil
	default:
		return nil, goerr.New("no agent for category", goerr.V("category", category))
	}
}
