// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"sync"
	"testing"
)

// TestConcurrentDuplicateVotes hammers SubmitVote with simultaneous
// submissions from the same guest. Exactly one may win; the rest get
// ErrAlreadyVoted either from the precondition check or from the vote
// table's unique constraint.
func TestConcurrentDuplicateVotes(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	svc := NewService(conn)

	poll, err := svc.CreatePoll("u1", "Lunch", false, []string{"Pizza", "Sushi"}, []string{"a@x.com"})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	choices := choiceIDsByLabel(t, conn, poll.ID)

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := svc.SubmitVote(poll.VoteToken, "a@x.com", []string{choices["Pizza"]})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	var wins, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyVoted):
			duplicates++
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("Expected exactly 1 winning vote, got %d", wins)
	}
	if duplicates != attempts-1 {
		t.Errorf("Expected %d duplicates, got %d", attempts-1, duplicates)
	}

	var votes int
	conn.QueryRow("SELECT COUNT(*) FROM vote WHERE poll_id = $1", poll.ID).Scan(&votes)
	if votes != 1 {
		t.Errorf("Expected 1 persisted vote, got %d", votes)
	}
}

// TestConcurrentDistinctVoters checks that the one-vote rule never
// blocks different guests racing each other.
func TestConcurrentDistinctVoters(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	svc := NewService(conn)

	guests := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	poll, err := svc.CreatePoll("u1", "Lunch", false, []string{"Pizza", "Sushi"}, guests)
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	choices := choiceIDsByLabel(t, conn, poll.ID)

	var wg sync.WaitGroup
	errs := make([]error, len(guests))

	for i, g := range guests {
		wg.Add(1)
		go func(idx int, email string) {
			defer wg.Done()
			_, err := svc.SubmitVote(poll.VoteToken, email, []string{choices["Pizza"]})
			errs[idx] = err
		}(i, g)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Guest %s failed to vote: %v", guests[i], err)
		}
	}

	var votes int
	conn.QueryRow("SELECT COUNT(*) FROM vote WHERE poll_id = $1", poll.ID).Scan(&votes)
	if votes != len(guests) {
		t.Errorf("Expected %d votes, got %d", len(guests), votes)
	}
}
