package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
)

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := types.UserID(chi.URLParam(r, "userID"))

	if err := s.uc.Chat.ClearConversation(ctx, userID); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, "Failed to clear conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
