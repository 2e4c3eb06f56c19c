package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A@X.com", "a@x.com"},
		{"  b@x.com ", "b@x.com"},
		{"C@X.COM", "c@x.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmails(t *testing.T) {
	got := NormalizeEmails([]string{"A@X.com", " b@x.com", "", "a@x.com", "  "})
	want := []string{"a@x.com", "b@x.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeEmails = %v, want %v", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic error", errors.New("connection reset"), false},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: vote.poll_id, vote.voter_email (2067)"), true},
		{"postgres unique", &pq.Error{Code: "23505"}, true},
		{"postgres other", &pq.Error{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation = %v, want %v", got, tt.want)
			}
		})
	}
}
