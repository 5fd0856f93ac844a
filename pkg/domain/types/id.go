package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies a conversation owner. It is opaque to the core: callers
// either supply one or the orchestrator mints a fresh one per session.
type UserID string

// NewUserID generates a new time-ordered UserID
func NewUserID() UserID {
	return UserID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// TicketID is a UUID-based identifier for a support ticket
type TicketID string

// NewTicketID generates a new UUID v4 TicketID
func NewTicketID() TicketID {
	return TicketID(uuid.New().String())
}

// String returns the string representation of TicketID
func (t TicketID) String() string {
	return string(t)
}
