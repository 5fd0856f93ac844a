package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/repository/firestore"
	"github.com/hatchpay/concierge/pkg/repository/memory"
	"github.com/hatchpay/concierge/pkg/repository/redis"
	"github.com/hatchpay/concierge/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend       string
	projectID     string
	databaseID    string
	redisAddr     string
	redisPassword string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Value:       "memory",
			Sources:     cli.EnvVars("CONCIERGE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("CONCIERGE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("CONCIERGE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address for chat memory (e.g. localhost:6379); falls back to in-process chat memory when empty",
			Sources:     cli.EnvVars("CONCIERGE_REDIS_ADDR"),
			Destination: &r.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("CONCIERGE_REDIS_PASSWORD"),
			Destination: &r.redisPassword,
		},
	}
}

// Configure initializes and returns a repository based on the configured
// backend. Chat memory goes to Redis when an address is given; tickets and
// the knowledge corpus live on the selected backend. The caller is
// responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	base, err := r.configureBase(ctx)
	if err != nil {
		return nil, err
	}

	if r.redisAddr == "" {
		return base, nil
	}

	repo, err := redis.New(ctx, r.redisAddr, r.redisPassword, base)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize redis chat memory")
	}
	logging.Default().Info("Using Redis chat memory", "addr", r.redisAddr)
	return repo, nil
}

func (r *Repository) configureBase(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		// Firestore has no chat memory of its own; conversations stay
		// in-process unless Redis is configured on top.
		repo, err := firestore.New(ctx, r.projectID, r.databaseID,
			firestore.WithChatMemory(memory.New().ChatMemory()),
		)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
