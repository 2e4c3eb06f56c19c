// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/testutil"
)

func TestGetResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	voting := NewVotingHandler(conn, cfg)
	handler := NewResultsHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "u1", false,
		[]string{"Pizza", "Sushi"}, []string{"a@x.com", "b@x.com"})

	// Both guests pick Sushi
	sushiID := choiceIDByLabel(t, conn, poll.ID, "Sushi")
	for i, email := range []string{"a@x.com", "b@x.com"} {
		req := testutil.MakeRequest("POST", "/vote/"+poll.VoteToken,
			models.SubmitVoteRequest{ChoiceIDs: []string{sushiID}},
			map[string]string{"Authorization": testutil.IssueBearer(t, "guest", email)})
		req.SetPathValue("token", poll.VoteToken)
		w := httptest.NewRecorder()
		authed(cfg, voting.SubmitVote)(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Vote %d failed with status %d: %s", i, w.Code, w.Body.String())
		}
	}

	fetch := func(token string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/results/"+token, nil, nil)
		req.SetPathValue("token", token)
		w := httptest.NewRecorder()
		handler.GetResults(w, req)
		return w
	}

	t.Run("tally via result token", func(t *testing.T) {
		w := fetch(poll.ResultToken)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ResultsResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.TotalVoters != 2 {
			t.Errorf("Expected 2 voters, got %d", resp.TotalVoters)
		}
		if len(resp.Tallies) != 2 {
			t.Fatalf("Expected 2 tally rows, got %d", len(resp.Tallies))
		}
		if resp.Tallies[0].Choice.Label != "Sushi" || resp.Tallies[0].Count != 2 {
			t.Errorf("Expected Sushi with 2 at the top, got %s with %d",
				resp.Tallies[0].Choice.Label, resp.Tallies[0].Count)
		}
		if resp.Tallies[1].Choice.Label != "Pizza" || resp.Tallies[1].Count != 0 {
			t.Errorf("Expected Pizza with 0 below, got %s with %d",
				resp.Tallies[1].Choice.Label, resp.Tallies[1].Count)
		}
	})

	t.Run("readable without identity", func(t *testing.T) {
		// No Authorization header; the token alone grants access
		w := fetch(poll.ResultToken)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("readable after disable", func(t *testing.T) {
		if _, err := conn.Exec("UPDATE poll SET is_active = FALSE WHERE id = $1", poll.ID); err != nil {
			t.Fatalf("Failed to disable poll: %v", err)
		}
		w := fetch(poll.ResultToken)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("vote token grants no results access", func(t *testing.T) {
		w := fetch(poll.VoteToken)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := fetch("bogus")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
