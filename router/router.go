// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/guestpoll/cliparse"
	"github.com/danielhkuo/guestpoll/handlers"
	"github.com/danielhkuo/guestpoll/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (authenticated)
	mux.HandleFunc("POST /polls", middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, pollHandler.CreatePoll)))
	mux.HandleFunc("GET /polls/mine", middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, pollHandler.MyPolls)))
	mux.HandleFunc("GET /polls/{id}/guests", middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, pollHandler.ListGuests)))

	// Voting (authenticated; the identity supplies the voter email)
	mux.HandleFunc("GET /vote/{token}", middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, votingHandler.GetBallot)))
	mux.HandleFunc("POST /vote/{token}", middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, votingHandler.SubmitVote)))

	// Capability-link operations (token possession is the authorization)
	mux.HandleFunc("GET /results/{token}", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("POST /disable/{token}", middleware.WithLogging(pollHandler.Disable))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("guestpoll API v1"))
	})

	return mux
}
