// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL sticks to types both engines (PostgreSQL and SQLite) agree
// on, and timestamps are always written explicitly by the application,
// so the same schema serves production and the in-memory test database.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    multiple_choices BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_owner ON poll(owner_id);

-- Capability tokens. The token column being the primary key is what
-- makes every token globally unique across all polls and all roles;
-- a colliding insert fails instead of overwriting.
CREATE TABLE IF NOT EXISTS poll_token (
    token TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    role TEXT NOT NULL CHECK (role IN ('vote', 'result', 'disable')),
    UNIQUE (poll_id, role)
);

CREATE INDEX IF NOT EXISTS idx_poll_token_poll ON poll_token(poll_id);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    UNIQUE (poll_id, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_choice_poll ON choice(poll_id);

-- Guests. Emails are normalized (trimmed, lowercased) before insert,
-- so the primary key doubles as the no-duplicate-invites rule.
CREATE TABLE IF NOT EXISTS guest (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    invited_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, email)
);

CREATE INDEX IF NOT EXISTS idx_guest_email ON guest(email);

-- Votes. UNIQUE (poll_id, voter_email) is the one-vote-per-guest rule;
-- concurrent duplicates lose at this constraint, not in application code.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    voter_email TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, voter_email)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll ON vote(poll_id);

-- Selected choices per vote
CREATE TABLE IF NOT EXISTS vote_choice (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    choice_id TEXT NOT NULL REFERENCES choice(id) ON DELETE CASCADE,
    PRIMARY KEY (vote_id, choice_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_choice_choice ON vote_choice(choice_id);
`
