package agent

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
)

// PersonalityAgent rewrites a draft reply to match the configured persona.
// Refinement is cosmetic: when it fails the draft is returned unchanged so
// tone never costs the user an answer.
type PersonalityAgent struct {
	client      interfaces.GenerationClient
	modelID     types.ModelID
	instruction string
}

// NewPersonalityAgent creates a tone refinement agent for the persona
func NewPersonalityAgent(client interfaces.GenerationClient, modelID types.ModelID, persona string) (*PersonalityAgent, error) {
	if client == nil {
		return nil, goerr.New("generation client is required")
	}
	if modelID == "" {
		modelID = types.DefaultRefinerModel
	}

	return &PersonalityAgent{
		client:      client,
		modelID:     modelID,
		instruction: personalityInstruction(persona),
	}, nil
}

// Refine rewrites the draft in the persona's tone. The user message is
// included so the rewrite keeps the reply on topic.
func (a *PersonalityAgent) Refine(ctx context.Context, userMsg, draft string) string {
	messages := []model.ChatMessage{
		model.UserMessage(userMsg),
		model.AssistantMessage(draft),
	}

	refined, err := a.client.GenerateResponse(ctx, a.modelID, a.instruction, messages)
	if err != nil {
		errutil.Log(ctx, err, "tone refinement failed, using unrefined draft")
		return draft
	}
	if refined == "" {
		return draft
	}

	return refined
}
