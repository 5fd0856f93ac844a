package http

import (
	"encoding/json"
	"net/http"

	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
	"github.com/hatchpay/concierge/pkg/utils/safe"
)

type chatRequest struct {
	UserID    string `json:"userId"`
	ChatInput string `json:"chatInput"`
}

// chatResponse carries either a conversational reply or a ticket creation
// confirmation, never both.
type chatResponse struct {
	UserID         string `json:"userId"`
	Response       string `json:"response,omitempty"`
	TicketResponse string `json:"ticketResponse,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, "Message is required")
		return
	}
	if req.ChatInput == "" {
		errutil.HandleHTTP(ctx, w, nil, http.StatusBadRequest, "Message is required")
		return
	}

	result, err := s.uc.Chat.HandleChatMessage(ctx, types.UserID(req.UserID), req.ChatInput)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	resp := chatResponse{UserID: result.UserID.String()}
	if result.Ticket != nil {
		resp.TicketResponse = result.Reply
	} else {
		resp.Response = result.Reply
	}

	w.Header().Set("Content-Type", "application/json")
	safe.EncodeJSON(ctx, w, resp)
}
