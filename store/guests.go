// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/guestpoll/models"
)

// NormalizeEmail trims and lowercases an email address. Every email
// that touches the guest table goes through here first, so invite
// checks hold regardless of input casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeEmails normalizes a batch and drops empties and duplicates,
// preserving first-seen order.
func NormalizeEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		n := NormalizeEmail(e)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// InsertGuests writes the poll's guest list inside the creation
// transaction. Emails must already be normalized and deduplicated.
func InsertGuests(tx *sql.Tx, pollID string, emails []string, invitedAt time.Time) error {
	for _, email := range emails {
		_, err := tx.Exec(`
			INSERT INTO guest (poll_id, email, invited_at)
			VALUES ($1, $2, $3)
		`, pollID, email, invitedAt)
		if err != nil {
			return fmt.Errorf("failed to insert guest: %w", err)
		}
	}
	return nil
}

// IsInvited answers the invite-membership question as a plain boolean,
// case-insensitively.
func IsInvited(db *sql.DB, pollID, email string) (bool, error) {
	var invited bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM guest
			WHERE poll_id = $1 AND email = $2
		)
	`, pollID, NormalizeEmail(email)).Scan(&invited)
	if err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return invited, nil
}

// ListGuests returns the poll's guests in invite order.
func ListGuests(db *sql.DB, pollID string) ([]models.Guest, error) {
	rows, err := db.Query(`
		SELECT poll_id, email, invited_at
		FROM guest
		WHERE poll_id = $1
		ORDER BY invited_at, email
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.PollID, &g.Email, &g.InvitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
