package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
	"github.com/hatchpay/concierge/pkg/utils/logging"
)

// TicketUseCase extracts ticket actions from generator output and manages
// persisted tickets.
type TicketUseCase struct {
	repo interfaces.Repository
}

func NewTicketUseCase(repo interfaces.Repository) *TicketUseCase {
	return &TicketUseCase{
		repo: repo,
	}
}

// HandleTicketAction inspects raw generator output for a ticket creation
// payload and persists it. Returns nil when the output is conversational
// prose, lacks the ticket shape, or persistence fails; ticket creation is
// best-effort and never fails the conversation.
func (uc *TicketUseCase) HandleTicketAction(ctx context.Context, raw string) *model.Ticket {
	action, ok := model.ParseTicketAction(raw)
	if !ok {
		return nil
	}

	ticket, err := uc.repo.Ticket().Create(ctx, &model.Ticket{
		Subject:     action.Subject,
		Description: action.Description,
		Status:      action.Status,
	})
	if err != nil {
		errutil.Log(ctx, err, "ticket creation failed, falling back to conversational reply")
		return nil
	}

	logging.From(ctx).Info("ticket created", "id", ticket.ID, "subject", ticket.Subject)
	return ticket
}

// ListTickets returns all tickets, newest first
func (uc *TicketUseCase) ListTickets(ctx context.Context) ([]*model.Ticket, error) {
	tickets, err := uc.repo.Ticket().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tickets")
	}
	return tickets, nil
}

// UpdateTicketStatus transitions a ticket to the given status
func (uc *TicketUseCase) UpdateTicketStatus(ctx context.Context, id types.TicketID, status types.TicketStatus) (*model.Ticket, error) {
	if !status.IsValid() {
		return nil, goerr.New("invalid ticket status", goerr.V("status", status))
	}

	ticket, err := uc.repo.Ticket().UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update ticket status", goerr.V("id", id))
	}
	return ticket, nil
}
