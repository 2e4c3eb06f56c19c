// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL is engine-neutral: the same statements run on
PostgreSQL (production) and SQLite (tests, small deployments).

# Tables

The schema includes:

  - poll: Poll metadata and the active flag
  - poll_token: Capability tokens, one row per (poll, role)
  - choice: Ordered voting choices per poll
  - guest: Invited emails per poll
  - vote: One vote per guest per poll
  - vote_choice: Selected choices per vote

# Relationships

	poll 1──* poll_token
	poll 1──* choice
	poll 1──* guest
	poll 1──* vote
	vote 1──* vote_choice

All foreign keys use ON DELETE CASCADE.

# Constraints That Carry Invariants

  - poll_token.token PRIMARY KEY: global token uniqueness across polls
    and roles; collisions error out rather than overwrite
  - guest PRIMARY KEY (poll_id, email): no duplicate invites
  - vote UNIQUE (poll_id, voter_email): one vote per guest, enforced
    atomically with the insert so concurrent duplicates cannot both win
  - choice UNIQUE (poll_id, ordinal): stable display and tie-break order
*/
package db
