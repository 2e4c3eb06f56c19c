// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/guestpoll/cliparse"
	"github.com/danielhkuo/guestpoll/lifecycle"
	"github.com/danielhkuo/guestpoll/middleware"
	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/results"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	svc *lifecycle.Service
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, svc: lifecycle.NewService(db)}
}

// GetResults handles GET /results/{token}
// Possession of the result token is the only authorization. Tallies
// stay visible after a poll is disabled; disabling stops votes, not
// reading.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	poll, err := h.svc.ResolveByResultToken(token)
	if err != nil {
		writeLifecycleError(w, err, "resolve result token")
		return
	}

	tallies, err := results.SortedTally(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to compute tally", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voters, err := results.TotalVoters(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to count voters", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Poll:        poll,
		Tallies:     tallies,
		TotalVoters: voters,
	})
}
