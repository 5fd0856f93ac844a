package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"

	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/service/llm"
)

// LLM holds CLI flags for the LLM provider configuration
type LLM struct {
	backend        string
	openaiAPIKey   string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-backend",
			Usage:       "LLM provider (openai or gemini)",
			Value:       "openai",
			Sources:     cli.EnvVars("CONCIERGE_LLM_BACKEND"),
			Destination: &l.backend,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key (required when using openai backend)",
			Sources:     cli.EnvVars("CONCIERGE_OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("CONCIERGE_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("CONCIERGE_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
	}
}

// Configure builds the LLM service with one provider client per distinct
// model. The first model listed backs the default client, which also serves
// embedding requests.
func (l *LLM) Configure(ctx context.Context, models ...types.ModelID) (*llm.Service, error) {
	if len(models) == 0 {
		models = []types.ModelID{types.DefaultGeneratorModel}
	}

	clients := make(map[types.ModelID]gollem.LLMClient, len(models))
	for _, m := range models {
		if _, ok := clients[m]; ok {
			continue
		}
		client, err := l.newClient(ctx, m)
		if err != nil {
			return nil, err
		}
		clients[m] = client
	}

	opts := make([]llm.Option, 0, len(clients))
	for m, client := range clients {
		opts = append(opts, llm.WithModel(m, client))
	}

	svc, err := llm.New(clients[models[0]], opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize LLM service")
	}
	return svc, nil
}

func (l *LLM) newClient(ctx context.Context, model types.ModelID) (gollem.LLMClient, error) {
	switch l.backend {
	case "openai":
		if l.openaiAPIKey == "" {
			return nil, goerr.New("openai-api-key is required when using openai backend")
		}
		client, err := openai.New(ctx, l.openaiAPIKey, openai.WithModel(model.String()))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client", goerr.V("model", model))
		}
		return client, nil

	case "gemini":
		if l.geminiProject == "" {
			return nil, goerr.New("gemini-project is required when using gemini backend")
		}
		client, err := gemini.New(ctx, l.geminiProject, l.geminiLocation, gemini.WithModel(model.String()))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client", goerr.V("model", model))
		}
		return client, nil

	default:
		return nil, goerr.New("invalid LLM backend", goerr.V("backend", l.backend))
	}
}
