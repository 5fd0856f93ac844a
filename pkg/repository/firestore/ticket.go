package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

type ticketRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTicketRepository(client *firestore.Client) *ticketRepository {
	return &ticketRepository{
		client: client,
	}
}

func (r *ticketRepository) ticketsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tickets"
	}
	return "tickets"
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	now := time.Now().UTC()
	created := *ticket
	if created.ID == "" {
		created.ID = types.NewTicketID()
	}
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.ticketsCollection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *ticketRepository) Get(ctx context.Context, id types.TicketID) (*model.Ticket, error) {
	doc, err := r.client.Collection(r.ticketsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("id", id))
	}

	var ticket model.Ticket
	if err := doc.DataTo(&ticket); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal ticket", goerr.V("id", id))
	}

	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]*model.Ticket, error) {
	iter := r.client.Collection(r.ticketsCollection()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	tickets := make([]*model.Ticket, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tickets")
		}

		var ticket model.Ticket
		if err := doc.DataTo(&ticket); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal ticket")
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id types.TicketID, ticketStatus types.TicketStatus) (*model.Ticket, error) {
	docRef := r.client.Collection(r.ticketsCollection()).Doc(id.String())

	updates := []firestore.Update{
		{Path: "Status", Value: ticketStatus},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to update ticket status", goerr.V("id", id))
	}

	return r.Get(ctx, id)
}
