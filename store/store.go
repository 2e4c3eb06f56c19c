// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/danielhkuo/guestpoll/models"
)

// IsUniqueViolation reports whether err is a unique-constraint failure
// from either supported engine. The store leans on these constraints
// for its hard invariants (one vote per guest, global token uniqueness),
// so callers translate this into their own domain error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// InsertPoll writes the poll row inside the creation transaction.
func InsertPoll(tx *sql.Tx, p models.Poll) error {
	_, err := tx.Exec(`
		INSERT INTO poll (id, title, owner_id, multiple_choices, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Title, p.OwnerID, p.MultipleChoices, p.IsActive, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

// InsertChoices writes the ordinal-tagged choice rows inside the
// creation transaction.
func InsertChoices(tx *sql.Tx, choices []models.Choice) error {
	for _, c := range choices {
		_, err := tx.Exec(`
			INSERT INTO choice (id, poll_id, label, ordinal)
			VALUES ($1, $2, $3, $4)
		`, c.ID, c.PollID, c.Label, c.Ordinal)
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
	}
	return nil
}

// TokenExists checks whether a token is already claimed by any poll
// under any role, within the creation transaction.
func TokenExists(tx *sql.Tx, token string) (bool, error) {
	var exists bool
	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll_token WHERE token = $1)
	`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check token existence: %w", err)
	}
	return exists, nil
}

// InsertToken binds a capability token to a poll under one role.
// The token column's primary key makes a collision an error, never an
// overwrite; callers check IsUniqueViolation on failure.
func InsertToken(tx *sql.Tx, token, pollID, role string) error {
	_, err := tx.Exec(`
		INSERT INTO poll_token (token, poll_id, role)
		VALUES ($1, $2, $3)
	`, token, pollID, role)
	if err != nil {
		return err
	}
	return nil
}

// PollByToken resolves a poll through one of its capability tokens.
// The lookup is role-scoped: a vote token never resolves as a result
// token and vice versa. Returns sql.ErrNoRows when nothing matches.
func PollByToken(db *sql.DB, token, role string) (models.Poll, error) {
	var p models.Poll
	err := db.QueryRow(`
		SELECT p.id, p.title, p.owner_id, p.multiple_choices, p.is_active, p.created_at
		FROM poll p
		JOIN poll_token t ON t.poll_id = p.id
		WHERE t.token = $1 AND t.role = $2
	`, token, role).Scan(
		&p.ID, &p.Title, &p.OwnerID, &p.MultipleChoices, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return models.Poll{}, err
	}

	if err := attachTokens(db, &p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// PollByID fetches a poll by its identity, tokens attached.
// Returns sql.ErrNoRows when the poll does not exist.
func PollByID(db *sql.DB, pollID string) (models.Poll, error) {
	var p models.Poll
	err := db.QueryRow(`
		SELECT id, title, owner_id, multiple_choices, is_active, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&p.ID, &p.Title, &p.OwnerID, &p.MultipleChoices, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return models.Poll{}, err
	}

	if err := attachTokens(db, &p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// attachTokens loads the poll's three capability tokens into the struct.
func attachTokens(db *sql.DB, p *models.Poll) error {
	rows, err := db.Query(`
		SELECT token, role FROM poll_token WHERE poll_id = $1
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var token, role string
		if err := rows.Scan(&token, &role); err != nil {
			return fmt.Errorf("failed to scan token: %w", err)
		}
		switch role {
		case models.RoleVote:
			p.VoteToken = token
		case models.RoleResult:
			p.ResultToken = token
		case models.RoleDisable:
			p.DisableToken = token
		}
	}
	return rows.Err()
}

// SetInactive flips the poll's active flag off. The transition is
// terminal; there is no way back to active.
func SetInactive(db *sql.DB, pollID string) error {
	_, err := db.Exec(`
		UPDATE poll SET is_active = FALSE WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to disable poll: %w", err)
	}
	return nil
}

// ChoicesByPoll returns the poll's choices in ordinal order.
func ChoicesByPoll(db *sql.DB, pollID string) ([]models.Choice, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, label, ordinal
		FROM choice
		WHERE poll_id = $1
		ORDER BY ordinal
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.Label, &c.Ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// PollsByOwner returns all polls created by a user, newest first.
func PollsByOwner(db *sql.DB, ownerID string) ([]models.Poll, error) {
	return queryPolls(db, `
		SELECT id, title, owner_id, multiple_choices, is_active, created_at
		FROM poll
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`, ownerID)
}

// PollsByGuestEmail returns all polls whose guest list contains the
// given normalized email, newest first.
func PollsByGuestEmail(db *sql.DB, email string) ([]models.Poll, error) {
	return queryPolls(db, `
		SELECT p.id, p.title, p.owner_id, p.multiple_choices, p.is_active, p.created_at
		FROM poll p
		JOIN guest g ON g.poll_id = p.id
		WHERE g.email = $1
		ORDER BY p.created_at DESC, p.id
	`, NormalizeEmail(email))
}

func queryPolls(db *sql.DB, query string, args ...any) ([]models.Poll, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.OwnerID, &p.MultipleChoices, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range polls {
		if err := attachTokens(db, &polls[i]); err != nil {
			return nil, err
		}
	}
	return polls, nil
}
