package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hatchpay/concierge/pkg/domain/types"
)

// Ticket is a persisted support request. The ID and timestamps are assigned
// by the ticket repository at creation time.
type Ticket struct {
	ID          types.TicketID     `json:"id" firestore:"ID"`
	Subject     string             `json:"subject" firestore:"Subject"`
	Description string             `json:"description" firestore:"Description"`
	Status      types.TicketStatus `json:"status" firestore:"Status"`
	CreatedAt   time.Time          `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt   time.Time          `json:"updatedAt" firestore:"UpdatedAt"`
}

// ticketActionName is the action value a generator emits to request ticket
// creation instead of a conversational reply.
const ticketActionName = "create_ticket"

// TicketAction is the provisional record parsed from a generator's raw
// output. It exists only between generation and ticket persistence.
type TicketAction struct {
	Action      string             `json:"action"`
	Subject     string             `json:"subject"`
	Description string             `json:"description"`
	Status      types.TicketStatus `json:"status"`
}

// ParseTicketAction attempts to read raw generator output as a ticket
// creation payload. Non-JSON output is the common conversational case, so
// any shape mismatch returns ok=false rather than an error. A missing or
// empty status is normalized to open.
func ParseTicketAction(raw string) (*TicketAction, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var action TicketAction
	if err := json.Unmarshal([]byte(trimmed), &action); err != nil {
		return nil, false
	}
	if action.Action != ticketActionName {
		return nil, false
	}
	if action.Subject == "" || action.Description == "" {
		return nil, false
	}

	action.Status = action.Status.Normalize()
	return &action, true
}
