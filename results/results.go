// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/store"
)

// SortedTally computes the per-choice vote counts for a poll and
// returns them rank-ordered: count descending, ties broken by the
// choice's creation ordinal ascending. Choices nobody picked appear
// with a count of zero, so the output always covers the whole poll.
func SortedTally(db *sql.DB, pollID string) ([]models.ChoiceTally, error) {
	choices, err := store.ChoicesByPoll(db, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choices: %w", err)
	}

	counts, err := choiceCounts(db, pollID)
	if err != nil {
		return nil, err
	}

	tallies := make([]models.ChoiceTally, len(choices))
	for i, c := range choices {
		tallies[i] = models.ChoiceTally{
			Choice: c,
			Count:  counts[c.ID],
		}
	}

	// The slice starts in ordinal order, so a stable sort on count
	// alone would already break ties correctly; spelling the ordinal
	// comparison out keeps the ordering independent of input order.
	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Choice.Ordinal < b.Choice.Ordinal
	})

	return tallies, nil
}

// TotalVoters counts the distinct guests who have voted on the poll.
// A multi-choice vote is still one voter, so this is the vote row
// count, never the sum of selections.
func TotalVoters(db *sql.DB, pollID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return count, nil
}

// choiceCounts returns how many votes include each choice.
func choiceCounts(db *sql.DB, pollID string) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT vc.choice_id, COUNT(*)
		FROM vote_choice vc
		JOIN vote v ON v.id = vc.vote_id
		WHERE v.poll_id = $1
		GROUP BY vc.choice_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count selections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var choiceID string
		var count int
		if err := rows.Scan(&choiceID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[choiceID] = count
	}
	return counts, rows.Err()
}
