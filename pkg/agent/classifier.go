package agent

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/logging"
)

// Classifier routes a user message to an intent category with a single LLM
// call. Classification is strict: the model must return the expected JSON
// with a known category, anything else is a hard failure rather than a
// guessed default.
type Classifier struct {
	client  interfaces.GenerationClient
	modelID types.ModelID
}

// NewClassifier creates a new intent classifier
func NewClassifier(client interfaces.GenerationClient, modelID types.ModelID) (*Classifier, error) {
	if client == nil {
		return nil, goerr.New("generation client is required")
	}
	if modelID == "" {
		modelID = types.DefaultClassifierModel
	}

	return &Classifier{
		client:  client,
		modelID: modelID,
	}, nil
}

type classificationResult struct {
	Agent string `json:"agent"`
}

// Classify determines which intent category should handle the message
func (c *Classifier) Classify(ctx context.Context, msg model.ChatMessage) (types.IntentCategory, error) {
	raw, err := c.client.GenerateResponse(ctx, c.modelID, classifierInstruction, []model.ChatMessage{msg})
	if err != nil {
		return "", goerr.Wrap(ErrClassificationFailed, "classifier call failed", goerr.V("cause", err))
	}

	var result classificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", goerr.Wrap(ErrInvalidClassification, "classifier returned invalid JSON", goerr.V("raw", raw))
	}

	category, err := types.ParseIntentCategory(result.Agent)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidClassification, "classifier returned unknown category", goerr.V("raw", raw))
	}

	logging.From(ctx).Debug("classified message", "category", category)
	return category, nil
}
