// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/store"
	"github.com/danielhkuo/guestpoll/tokens"
)

// tokenAttempts bounds regeneration when a freshly minted token is
// already taken. Exhaustion means crypto/rand is broken or the token
// space is exhausted, neither of which a retry loop fixes.
const tokenAttempts = 5

// Service orchestrates the poll lifecycle: creation, token resolution,
// disabling, and vote submission. All coordination happens through the
// database; the service itself holds no mutable state.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreatePoll validates the input, mints the three capability tokens,
// and persists poll, choices, guests, and tokens in one transaction.
// No partial poll can exist: any failure rolls everything back.
func (s *Service) CreatePoll(ownerID, title string, multipleChoices bool, choiceTexts []string, guestEmails []string) (models.Poll, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Poll{}, validationErrorf("title is required")
	}
	if ownerID == "" {
		return models.Poll{}, validationErrorf("owner is required")
	}

	labels := make([]string, 0, len(choiceTexts))
	for _, text := range choiceTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			return models.Poll{}, validationErrorf("choice labels must not be empty")
		}
		labels = append(labels, text)
	}
	if len(labels) < models.MinChoices || len(labels) > models.MaxChoices {
		return models.Poll{}, validationErrorf("polls need between %d and %d choices, got %d",
			models.MinChoices, models.MaxChoices, len(labels))
	}

	guests := store.NormalizeEmails(guestEmails)
	if len(guests) == 0 {
		return models.Poll{}, validationErrorf("at least one guest is required")
	}

	now := time.Now().UTC()
	poll := models.Poll{
		ID:              uuid.NewString(),
		Title:           title,
		OwnerID:         ownerID,
		MultipleChoices: multipleChoices,
		IsActive:        true,
		CreatedAt:       now,
	}

	choices := make([]models.Choice, len(labels))
	for i, label := range labels {
		choices[i] = models.Choice{
			ID:      uuid.NewString(),
			PollID:  poll.ID,
			Label:   label,
			Ordinal: i,
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := store.InsertPoll(tx, poll); err != nil {
		return models.Poll{}, err
	}
	if err := store.InsertChoices(tx, choices); err != nil {
		return models.Poll{}, err
	}
	if err := store.InsertGuests(tx, poll.ID, guests, now); err != nil {
		return models.Poll{}, err
	}

	poll.VoteToken, err = s.mintToken(tx, poll.ID, models.RoleVote)
	if err != nil {
		return models.Poll{}, err
	}
	poll.ResultToken, err = s.mintToken(tx, poll.ID, models.RoleResult)
	if err != nil {
		return models.Poll{}, err
	}
	poll.DisableToken, err = s.mintToken(tx, poll.ID, models.RoleDisable)
	if err != nil {
		return models.Poll{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit poll creation: %w", err)
	}

	slog.Info("poll created",
		"poll_id", poll.ID,
		"owner_id", ownerID,
		"choices", len(choices),
		"guests", len(guests),
	)
	return poll, nil
}

// mintToken generates a token and binds it to the poll under the given
// role, regenerating a bounded number of times if the token is taken.
// Tokens minted earlier in the same transaction are visible to the
// existence check, which also keeps the three pairwise distinct.
func (s *Service) mintToken(tx *sql.Tx, pollID, role string) (string, error) {
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		token, err := tokens.New()
		if err != nil {
			return "", err
		}

		exists, err := store.TokenExists(tx, token)
		if err != nil {
			return "", err
		}
		if exists {
			slog.Warn("token collision, regenerating", "poll_id", pollID, "role", role, "attempt", attempt)
			continue
		}

		if err := store.InsertToken(tx, token, pollID, role); err != nil {
			if store.IsUniqueViolation(err) {
				slog.Warn("token collision on insert, regenerating", "poll_id", pollID, "role", role, "attempt", attempt)
				continue
			}
			return "", fmt.Errorf("failed to insert token: %w", err)
		}
		return token, nil
	}
	return "", fmt.Errorf("minting %s token for poll %s: %w", role, pollID, ErrTokenCollision)
}

// ResolveByVoteToken looks up the poll a vote token belongs to.
func (s *Service) ResolveByVoteToken(token string) (models.Poll, error) {
	return s.resolve(token, models.RoleVote)
}

// ResolveByResultToken looks up the poll a result token belongs to.
func (s *Service) ResolveByResultToken(token string) (models.Poll, error) {
	return s.resolve(token, models.RoleResult)
}

// ResolveByDisableToken looks up the poll a disable token belongs to.
func (s *Service) ResolveByDisableToken(token string) (models.Poll, error) {
	return s.resolve(token, models.RoleDisable)
}

func (s *Service) resolve(token, role string) (models.Poll, error) {
	if token == "" {
		return models.Poll{}, ErrNotFound
	}
	p, err := store.PollByToken(s.db, token, role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to resolve token: %w", err)
	}
	return p, nil
}

// Disable turns the poll off via its disable token. Disabling an
// already-disabled poll is a no-op, not an error; there is no way to
// re-enable.
func (s *Service) Disable(disableToken string) error {
	p, err := s.ResolveByDisableToken(disableToken)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return nil
	}

	if err := store.SetInactive(s.db, p.ID); err != nil {
		return err
	}

	slog.Info("poll disabled", "poll_id", p.ID)
	return nil
}

// SubmitVote records one guest's vote. The preconditions run in a
// fixed order, each a hard gate: resolve the vote token, poll still
// active, voter invited, no prior vote, every selected choice belongs
// to the poll, single selection unless the poll allows several. On
// success the poll's result token comes back so the caller can point
// the voter at the results.
func (s *Service) SubmitVote(voteToken, voterEmail string, selectedChoiceIDs []string) (string, error) {
	p, err := s.ResolveByVoteToken(voteToken)
	if err != nil {
		return "", err
	}

	if !p.IsActive {
		return "", ErrPollDisabled
	}

	email := store.NormalizeEmail(voterEmail)
	if email == "" {
		return "", validationErrorf("voter email is required")
	}

	invited, err := store.IsInvited(s.db, p.ID, email)
	if err != nil {
		return "", err
	}
	if !invited {
		return "", ErrNotInvited
	}

	voted, err := store.HasVoted(s.db, p.ID, email)
	if err != nil {
		return "", err
	}
	if voted {
		return "", ErrAlreadyVoted
	}

	if len(selectedChoiceIDs) == 0 {
		return "", validationErrorf("selection must not be empty")
	}

	choices, err := store.ChoicesByPoll(s.db, p.ID)
	if err != nil {
		return "", err
	}
	valid := make(map[string]bool, len(choices))
	for _, c := range choices {
		valid[c.ID] = true
	}

	selection := make([]string, 0, len(selectedChoiceIDs))
	seen := make(map[string]bool, len(selectedChoiceIDs))
	for _, id := range selectedChoiceIDs {
		if !valid[id] {
			return "", ErrInvalidChoice
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		selection = append(selection, id)
	}

	if !p.MultipleChoices && len(selection) != 1 {
		return "", ErrInvalidChoice
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	vote := models.Vote{
		ID:          uuid.NewString(),
		PollID:      p.ID,
		VoterEmail:  email,
		ChoiceIDs:   selection,
		SubmittedAt: time.Now().UTC(),
	}
	if err := store.InsertVote(tx, vote); err != nil {
		// A concurrent submission from the same guest got here first.
		if store.IsUniqueViolation(err) {
			return "", ErrAlreadyVoted
		}
		return "", fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit vote: %w", err)
	}

	slog.Info("vote recorded", "poll_id", p.ID, "vote_id", vote.ID, "selections", len(selection))
	return p.ResultToken, nil
}
