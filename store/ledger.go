// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/guestpoll/models"
)

// HasVoted reports whether a vote already exists for (poll, email).
func HasVoted(db *sql.DB, pollID, email string) (bool, error) {
	var voted bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE poll_id = $1 AND voter_email = $2
		)
	`, pollID, NormalizeEmail(email)).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check prior vote: %w", err)
	}
	return voted, nil
}

// InsertVote records one guest's vote and its selected choices in a
// single transaction. The vote table's UNIQUE (poll_id, voter_email)
// rejects a second vote for the same guest; when two submissions race,
// the constraint, not this code, decides the winner. Callers check
// IsUniqueViolation on the returned error.
func InsertVote(tx *sql.Tx, v models.Vote) error {
	_, err := tx.Exec(`
		INSERT INTO vote (id, poll_id, voter_email, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.PollID, v.VoterEmail, v.SubmittedAt)
	if err != nil {
		return err
	}

	for _, choiceID := range v.ChoiceIDs {
		_, err := tx.Exec(`
			INSERT INTO vote_choice (vote_id, choice_id)
			VALUES ($1, $2)
		`, v.ID, choiceID)
		if err != nil {
			return fmt.Errorf("failed to insert vote choice: %w", err)
		}
	}
	return nil
}
