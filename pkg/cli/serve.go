package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpay/concierge/pkg/agent"
	"github.com/hatchpay/concierge/pkg/cli/config"
	httpctrl "github.com/hatchpay/concierge/pkg/controller/http"
	"github.com/hatchpay/concierge/pkg/service/retrieval"
	"github.com/hatchpay/concierge/pkg/usecase"
	"github.com/hatchpay/concierge/pkg/utils/async"
	"github.com/hatchpay/concierge/pkg/utils/logging"
	"github.com/hatchpay/concierge/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CONCIERGE_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			llmSvc, err := llmCfg.Configure(ctx,
				app.GeneratorModel(),
				app.ClassifierModel(),
				app.RefinerModel(),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM service")
			}

			retriever, err := retrieval.New(repo.Knowledge(), llmSvc, app.Knowledge.Sources)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize retrieval service")
			}
			if len(app.Knowledge.Sources) == 0 {
				logging.Default().Warn("no knowledge sources configured, answers will have no retrieval context")
			} else {
				// Warm up the corpus so the first chat request does not pay
				// the full ingestion cost.
				async.Dispatch(ctx, func(ctx context.Context) error {
					return retriever.Refresh(ctx)
				})
			}

			classifier, err := agent.NewClassifier(llmSvc, app.ClassifierModel())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize classifier")
			}
			knowledgeAgent, err := agent.NewKnowledgeAgent(llmSvc, retriever, app.GeneratorModel())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge agent")
			}
			csAgent, err := agent.NewCustomerServiceAgent(llmSvc, app.GeneratorModel())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize customer service agent")
			}
			agents, err := agent.NewSet(knowledgeAgent, csAgent)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize agent set")
			}
			refiner, err := agent.NewPersonalityAgent(llmSvc, app.RefinerModel(), app.Persona)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize personality agent")
			}

			uc := usecase.New(repo, classifier, agents, refiner)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
