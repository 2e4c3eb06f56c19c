// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/guestpoll/models"
	"github.com/danielhkuo/guestpoll/testutil"
)

func ballotRequest(t *testing.T, token, userID, email string) *http.Request {
	t.Helper()
	req := testutil.MakeRequest("GET", "/vote/"+token, nil, map[string]string{
		"Authorization": testutil.IssueBearer(t, userID, email),
	})
	req.SetPathValue("token", token)
	return req
}

func TestGetBallot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "u1", false,
		[]string{"Pizza", "Sushi", "Tacos"}, []string{"a@x.com"})

	t.Run("invited guest", func(t *testing.T) {
		w := httptest.NewRecorder()
		authed(cfg, handler.GetBallot)(w, ballotRequest(t, poll.VoteToken, "u2", "a@x.com"))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.AlreadyVoted {
			t.Error("Fresh guest should not be marked as having voted")
		}
		if len(resp.Choices) != 3 {
			t.Fatalf("Expected 3 choices, got %d", len(resp.Choices))
		}
		for i, c := range resp.Choices {
			if c.Ordinal != i {
				t.Errorf("Choice %d out of display order (ordinal %d)", i, c.Ordinal)
			}
		}
	})

	t.Run("already voted flag", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/vote/"+poll.VoteToken,
			models.SubmitVoteRequest{ChoiceIDs: []string{firstChoiceID(t, conn, poll.ID)}},
			map[string]string{"Authorization": testutil.IssueBearer(t, "u2", "a@x.com")})
		req.SetPathValue("token", poll.VoteToken)
		voteW := httptest.NewRecorder()
		authed(cfg, handler.SubmitVote)(voteW, req)
		testutil.AssertStatus(t, voteW, http.StatusCreated)

		w := httptest.NewRecorder()
		authed(cfg, handler.GetBallot)(w, ballotRequest(t, poll.VoteToken, "u2", "a@x.com"))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.AlreadyVoted {
			t.Error("Expected already_voted after submitting")
		}
	})

	t.Run("uninvited", func(t *testing.T) {
		w := httptest.NewRecorder()
		authed(cfg, handler.GetBallot)(w, ballotRequest(t, poll.VoteToken, "u3", "stranger@x.com"))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := httptest.NewRecorder()
		authed(cfg, handler.GetBallot)(w, ballotRequest(t, "bogus", "u2", "a@x.com"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("result token is not a ballot token", func(t *testing.T) {
		w := httptest.NewRecorder()
		authed(cfg, handler.GetBallot)(w, ballotRequest(t, poll.ResultToken, "u2", "a@x.com"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmitVoteEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "u1", false,
		[]string{"Pizza", "Sushi"}, []string{"a@x.com", "b@x.com"})
	choiceID := firstChoiceID(t, conn, poll.ID)

	submit := func(token, userID, email string, choiceIDs []string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/vote/"+token,
			models.SubmitVoteRequest{ChoiceIDs: choiceIDs},
			map[string]string{"Authorization": testutil.IssueBearer(t, userID, email)})
		req.SetPathValue("token", token)
		w := httptest.NewRecorder()
		authed(cfg, handler.SubmitVote)(w, req)
		return w
	}

	t.Run("success returns result link", func(t *testing.T) {
		w := submit(poll.VoteToken, "u2", "a@x.com", []string{choiceID})
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.SubmitVoteResponse
		testutil.AssertJSON(t, w, &resp)
		if !strings.HasSuffix(resp.ResultURL, "/results/"+poll.ResultToken) {
			t.Errorf("Result URL %q does not target the poll's result token", resp.ResultURL)
		}
	})

	t.Run("duplicate vote", func(t *testing.T) {
		w := submit(poll.VoteToken, "u2", "a@x.com", []string{choiceID})
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("uninvited", func(t *testing.T) {
		w := submit(poll.VoteToken, "u3", "stranger@x.com", []string{choiceID})
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("foreign choice id", func(t *testing.T) {
		w := submit(poll.VoteToken, "u4", "b@x.com", []string{"not-a-choice"})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("empty selection", func(t *testing.T) {
		w := submit(poll.VoteToken, "u4", "b@x.com", nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("disabled poll", func(t *testing.T) {
		closed := testutil.CreateTestPoll(t, conn, "u1", false,
			[]string{"Yes", "No"}, []string{"b@x.com"})
		if _, err := conn.Exec("UPDATE poll SET is_active = FALSE WHERE id = $1", closed.ID); err != nil {
			t.Fatalf("Failed to disable poll: %v", err)
		}

		w := submit(closed.VoteToken, "u4", "b@x.com", []string{firstChoiceID(t, conn, closed.ID)})
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

// firstChoiceID returns the id of the poll's first choice in display order.
func firstChoiceID(t *testing.T, conn *sql.DB, pollID string) string {
	t.Helper()
	var id string
	err := conn.QueryRow("SELECT id FROM choice WHERE poll_id = $1 ORDER BY ordinal LIMIT 1", pollID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to look up choice: %v", err)
	}
	return id
}
