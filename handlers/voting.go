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
	"github.com/danielhkuo/guestpoll/store"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	svc *lifecycle.Service
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, svc: lifecycle.NewService(db)}
}

// GetBallot handles GET /vote/{token}
// Returns the data the voting page renders: the poll, its choices in
// display order, and whether the caller already voted.
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	poll, err := h.svc.ResolveByVoteToken(token)
	if err != nil {
		writeLifecycleError(w, err, "resolve vote token")
		return
	}

	invited, err := store.IsInvited(h.db, poll.ID, user.Email)
	if err != nil {
		slog.Error("failed to check invitation", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !invited {
		middleware.ErrorResponse(w, http.StatusForbidden, "You are not invited to this poll")
		return
	}

	choices, err := store.ChoicesByPoll(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query choices", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voted, err := store.HasVoted(h.db, poll.ID, user.Email)
	if err != nil {
		slog.Error("failed to check prior vote", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		Poll:         poll,
		Choices:      choices,
		AlreadyVoted: voted,
	})
}

// SubmitVote handles POST /vote/{token}
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resultToken, err := h.svc.SubmitVote(token, user.Email, req.ChoiceIDs)
	if err != nil {
		writeLifecycleError(w, err, "submit vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		ResultURL: h.cfg.BaseURL + "/results/" + resultToken,
		Message:   "Vote recorded",
	})
}
