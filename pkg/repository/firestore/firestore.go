package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Firestore is a Repository backed by Google Cloud Firestore. It persists
// tickets and the retrieval corpus; chat memory is expected to be layered on
// top by the Redis repository, but a plain Firestore deployment also works
// for development.
type Firestore struct {
	client    *firestore.Client
	ticket    *ticketRepository
	knowledge *knowledgeRepository
	chat      interfaces.ChatMemoryRepository
}

var _ interfaces.Repository = &Firestore{}

// Option is a functional option for Firestore configuration
type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, letting several
// deployments share one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.ticket.collectionPrefix = prefix
		f.knowledge.collectionPrefix = prefix
	}
}

// WithChatMemory supplies the chat memory implementation layered over this
// repository
func WithChatMemory(chat interfaces.ChatMemoryRepository) Option {
	return func(f *Firestore) {
		f.chat = chat
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:    client,
		ticket:    newTicketRepository(client),
		knowledge: newKnowledgeRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) ChatMemory() interfaces.ChatMemoryRepository {
	return f.chat
}

func (f *Firestore) Ticket() interfaces.TicketRepository {
	return f.ticket
}

func (f *Firestore) Knowledge() interfaces.KnowledgeRepository {
	return f.knowledge
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
