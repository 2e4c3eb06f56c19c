package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/danielhkuo/guestpoll/cliparse"
	"github.com/danielhkuo/guestpoll/middleware"
)

// authed wraps a handler in the same identity gate the router applies.
func authed(cfg cliparse.Config, h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireUser(cfg.JWTSecret, h)
}

func choiceIDByLabel(t *testing.T, conn *sql.DB, pollID, label string) string {
	t.Helper()
	var id string
	err := conn.QueryRow("SELECT id FROM choice WHERE poll_id = $1 AND label = $2", pollID, label).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to look up choice %q: %v", label, err)
	}
	return id
}
