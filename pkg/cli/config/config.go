package config

import (
	"net/url"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpay/concierge/pkg/domain/types"
)

// AppConfig holds the CLI flag pointing at the TOML application config
type AppConfig struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "app-config",
			Usage:       "Path to application config TOML file",
			Sources:     cli.EnvVars("CONCIERGE_APP_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads and validates the application config. A missing flag
// yields an empty config with all defaults.
func (a *AppConfig) Configure() (*App, error) {
	app := &App{}
	if a.path == "" {
		return app, nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read app config", goerr.V("path", a.path))
	}
	if err := toml.Unmarshal(data, app); err != nil {
		return nil, goerr.Wrap(err, "failed to parse app config", goerr.V("path", a.path))
	}
	if err := app.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid app config", goerr.V("path", a.path))
	}

	return app, nil
}

// App is the parsed application configuration
type App struct {
	Persona   string    `toml:"persona"`
	Knowledge Knowledge `toml:"knowledge"`
	Models    Models    `toml:"models"`
}

// Knowledge configures the retrieval corpus
type Knowledge struct {
	Sources []string `toml:"sources"`
}

// Models names the LLM model per pipeline role. Empty values fall back to
// the built-in defaults.
type Models struct {
	Classifier string `toml:"classifier"`
	Generator  string `toml:"generator"`
	Refiner    string `toml:"refiner"`
}

// Validate checks if the App configuration is valid
func (a *App) Validate() error {
	seen := make(map[string]bool)
	for _, source := range a.Knowledge.Sources {
		u, err := url.Parse(source)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return goerr.New("knowledge source must be an http(s) URL", goerr.V("source", source))
		}
		if seen[source] {
			return goerr.New("duplicate knowledge source", goerr.V("source", source))
		}
		seen[source] = true
	}
	return nil
}

// ClassifierModel returns the configured classifier model or the default
func (a *App) ClassifierModel() types.ModelID {
	if a.Models.Classifier != "" {
		return types.ModelID(a.Models.Classifier)
	}
	return types.DefaultClassifierModel
}

// GeneratorModel returns the configured generator model or the default
func (a *App) GeneratorModel() types.ModelID {
	if a.Models.Generator != "" {
		return types.ModelID(a.Models.Generator)
	}
	return types.DefaultGeneratorModel
}

// RefinerModel returns the configured refiner model or the default
func (a *App) RefinerModel() types.ModelID {
	if a.Models.Refiner != "" {
		return types.ModelID(a.Models.Refiner)
	}
	return types.DefaultRefinerModel
}
