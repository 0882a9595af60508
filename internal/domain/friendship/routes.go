package friendship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns friendship router. Every route requires authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/send-request", h.SendRequest)
	r.Post("/respond-request", h.RespondRequest)
	r.Get("/friends", h.ListFriends)
	r.Get("/pending-requests", h.ListPending)

	return r
}
