package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pelletier/go-toml/v2"

	"github.com/hatchpay/concierge/pkg/cli/config"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

func TestAppConfigParsing(t *testing.T) {
	raw := `
persona = "a cheerful support assistant for an online store"

[knowledge]
sources = [
  "https://docs.example.com/faq",
  "https://docs.example.com/shipping",
]

[models]
classifier = "gpt-5-nano"
generator = "gpt-5-mini"
`

	var app config.App
	gt.NoError(t, toml.Unmarshal([]byte(raw), &app)).Required()
	gt.NoError(t, app.Validate()).Required()

	gt.Value(t, app.Persona).Equal("a cheerful support assistant for an online store")
	gt.Array(t, app.Knowledge.Sources).Length(2)
	gt.Value(t, app.ClassifierModel()).Equal(types.ModelID("gpt-5-nano"))
	gt.Value(t, app.GeneratorModel()).Equal(types.ModelID("gpt-5-mini"))
	// unset model falls back to the default
	gt.Value(t, app.RefinerModel()).Equal(types.DefaultRefinerModel)
}

func TestAppValidate(t *testing.T) {
	t.Run("empty config is valid", func(t *testing.T) {
		app := &config.App{}
		gt.NoError(t, app.Validate())
		gt.Value(t, app.ClassifierModel()).Equal(types.DefaultClassifierModel)
	})

	t.Run("non-HTTP source is rejected", func(t *testing.T) {
		app := &config.App{
			Knowledge: config.Knowledge{Sources: []string{"ftp://example.com/docs"}},
		}
		gt.Error(t, app.Validate())
	})

	t.Run("duplicate source is rejected", func(t *testing.T) {
		app := &config.App{
			Knowledge: config.Knowledge{Sources: []string{
				"https://docs.example.com/faq",
				"https://docs.example.com/faq",
			}},
		}
		gt.Error(t, app.Validate())
	})
}
