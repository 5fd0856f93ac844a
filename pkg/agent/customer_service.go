package agent

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// CustomerServiceAgent handles account and order inquiries. Its instruction
// permits answering with a ticket creation payload instead of prose; the
// caller decides what to do with that payload.
type CustomerServiceAgent struct {
	client  interfaces.GenerationClient
	modelID types.ModelID
}

var _ Agent = &CustomerServiceAgent{}

// NewCustomerServiceAgent creates a customer support agent
func NewCustomerServiceAgent(client interfaces.GenerationClient, modelID types.ModelID) (*CustomerServiceAgent, error) {
	if client == nil {
		return nil, goerr.New("generation client is required")
	}
	if modelID == "" {
		modelID = types.DefaultGeneratorModel
	}

	return &CustomerServiceAgent{
		client:  client,
		modelID: modelID,
	}, nil
}

func (a *CustomerServiceAgent) Generate(ctx context.Context, history []model.ChatMessage) (string, error) {
	resp, err := a.client.GenerateResponse(ctx, a.modelID, customerServiceInstruction, history)
	if err != nil {
		return "", goerr.Wrap(ErrGenerationFailed, "customer service agent call failed", goerr.V("cause", err))
	}

	return resp, nil
}
