package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
)

// Redis is a Repository that keeps chat memory in Redis lists and delegates
// ticket and knowledge persistence to a base repository. Conversation state
// is the only hot, expiring data in the system; everything else stays on the
// durable backend.
type Redis struct {
	client *goredis.Client
	base   interfaces.Repository
	chat   *chatMemoryRepository
}

var _ interfaces.Repository = &Redis{}

// Option is a functional option for Redis configuration
type Option func(*Redis)

// WithKeyPrefix overrides the chat memory key prefix
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) {
		r.chat.prefix = prefix
	}
}

// New connects to Redis at addr and wraps base with a Redis-backed chat
// memory. The caller is responsible for calling Close() on the returned
// repository.
func New(ctx context.Context, addr, password string, base interfaces.Repository, opts ...Option) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr))
	}

	r := &Redis{
		client: client,
		base:   base,
		chat:   newChatMemoryRepository(client),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Redis) ChatMemory() interfaces.ChatMemoryRepository {
	return r.chat
}

func (r *Redis) Ticket() interfaces.TicketRepository {
	return r.base.Ticket()
}

func (r *Redis) Knowledge() interfaces.KnowledgeRepository {
	return r.base.Knowledge()
}

func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return r.base.Close()
}
