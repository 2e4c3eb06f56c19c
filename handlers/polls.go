// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/guestpoll/cliparse"
	"github.com/danielhkuo/guestpoll/lifecycle"
	"github.com/danielhkuo/guestpoll/middleware"
	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/store"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	svc *lifecycle.Service
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg, svc: lifecycle.NewService(db)}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.CreatePoll(user.ID, req.Title, req.MultipleChoices, req.Choices, req.Guests)
	if err != nil {
		writeLifecycleError(w, err, "create poll")
		return
	}

	// Tokens become absolute links here; the core only knows the bare
	// tokens.
	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:     poll.ID,
		VoteURL:    h.cfg.BaseURL + "/vote/" + poll.VoteToken,
		ResultURL:  h.cfg.BaseURL + "/results/" + poll.ResultToken,
		DisableURL: h.cfg.BaseURL + "/disable/" + poll.DisableToken,
	})
}

// MyPolls handles GET /polls/mine
// Returns the caller's created polls and the polls they are invited to.
func (h *PollHandler) MyPolls(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	created, err := store.PollsByOwner(h.db, user.ID)
	if err != nil {
		slog.Error("failed to query created polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	joined, err := store.PollsByGuestEmail(h.db, user.Email)
	if err != nil {
		slog.Error("failed to query joined polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.UserPollsResponse{
		Created: make([]models.PollSummary, 0, len(created)),
		Joined:  make([]models.PollSummary, 0, len(joined)),
	}
	for _, p := range created {
		// Owners see all three links.
		resp.Created = append(resp.Created, models.PollSummary{
			ID:              p.ID,
			Title:           p.Title,
			MultipleChoices: p.MultipleChoices,
			IsActive:        p.IsActive,
			VoteURL:         h.cfg.BaseURL + "/vote/" + p.VoteToken,
			ResultURL:       h.cfg.BaseURL + "/results/" + p.ResultToken,
			DisableURL:      h.cfg.BaseURL + "/disable/" + p.DisableToken,
		})
	}
	for _, p := range joined {
		// Guests never see the disable link.
		resp.Joined = append(resp.Joined, models.PollSummary{
			ID:              p.ID,
			Title:           p.Title,
			MultipleChoices: p.MultipleChoices,
			IsActive:        p.IsActive,
			VoteURL:         h.cfg.BaseURL + "/vote/" + p.VoteToken,
			ResultURL:       h.cfg.BaseURL + "/results/" + p.ResultToken,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListGuests handles GET /polls/{id}/guests
// Owner-only view of a poll's invite list.
func (h *PollHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := store.PollByID(h.db, pollID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if poll.OwnerID != user.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll owner may list guests")
		return
	}

	guests, err := store.ListGuests(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query guests", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GuestListResponse{
		PollID: poll.ID,
		Guests: guests,
	})
}

// Disable handles POST /disable/{token}
// Possession of the disable token is the only authorization; the call
// is idempotent.
func (h *PollHandler) Disable(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.svc.Disable(token); err != nil {
		writeLifecycleError(w, err, "disable poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"disabled": true})
}

// writeLifecycleError maps the lifecycle error taxonomy onto HTTP
// statuses. Unknown errors are internal faults: logged, reported
// generically.
func writeLifecycleError(w http.ResponseWriter, err error, op string) {
	var vErr *lifecycle.ValidationError
	switch {
	case errors.As(err, &vErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, lifecycle.ErrInvalidChoice):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Selection contains invalid choices")
	case errors.Is(err, lifecycle.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, lifecycle.ErrNotInvited):
		middleware.ErrorResponse(w, http.StatusForbidden, "You are not invited to this poll")
	case errors.Is(err, lifecycle.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
	case errors.Is(err, lifecycle.ErrPollDisabled):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is no longer accepting votes")
	default:
		slog.Error("operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
