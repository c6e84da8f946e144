package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PingFunc checks backing-store connectivity for the health endpoint.
type PingFunc func(ctx context.Context) error

func NewHandler(authHandler *AuthHandler, voteHandler *VoteHandler, ping PingFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/verify", authHandler.Verify)
		r.Post("/login", authHandler.Login)

		r.Post("/vote", voteHandler.CastVote)
		r.Get("/results", voteHandler.Results)
		r.Get("/time_left", voteHandler.TimeLeft)

		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			if ping != nil {
				if err := ping(req.Context()); err != nil {
					writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
					return
				}
			}
			writeMessage(w, http.StatusOK, "ok")
		})
	})

	return r
}
