package interfaces

import (
	"context"

	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
)

// TicketRepository defines the interface for Ticket data persistence
type TicketRepository interface {
	// Create persists a new ticket, assigning its ID and timestamps
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)

	// Get retrieves a ticket by ID
	Get(ctx context.Context, id types.TicketID) (*model.Ticket, error)

	// List retrieves all tickets, newest first
	List(ctx context.Context) ([]*model.Ticket, error)

	// UpdateStatus transitions a ticket's status
	UpdateStatus(ctx context.Context, id types.TicketID, status types.TicketStatus) (*model.Ticket, error)
}
