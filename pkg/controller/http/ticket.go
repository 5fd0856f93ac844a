package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
	"github.com/hatchpay/concierge/pkg/utils/safe"
)

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tickets, err := s.uc.Ticket.ListTickets(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, "Failed to list tickets")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safe.EncodeJSON(ctx, w, tickets)
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticketID := types.TicketID(chi.URLParam(r, "ticketID"))

	var req updateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, "Status is required")
		return
	}

	status, err := types.ParseTicketStatus(req.Status)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, "Unknown ticket status")
		return
	}

	ticket, err := s.uc.Ticket.UpdateTicketStatus(ctx, ticketID, status)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound, "Ticket not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safe.EncodeJSON(ctx, w, ticket)
}
