// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data access layer: plain functions over *sql.DB
and *sql.Tx, hand-written SQL, no ORM.

# Three Capabilities

The package covers three concerns the lifecycle composes:

  - Poll store: InsertPoll, InsertChoices, InsertToken, PollByToken,
    PollByID, PollsByOwner, PollsByGuestEmail, ChoicesByPoll, SetInactive
  - Guest registry: InsertGuests, IsInvited, ListGuests, plus the
    NormalizeEmail helpers every email passes through
  - Vote ledger: HasVoted, InsertVote

# Transactions

Creation-time writers (poll, choices, guests, tokens) take *sql.Tx and
are only ever called inside the lifecycle's creation transaction, so a
poll either exists completely or not at all. Reads take *sql.DB.

# Constraint-Backed Invariants

Two writes deliberately return the raw driver error instead of wrapping
it: InsertToken and the vote row insert in InsertVote. Their unique
constraints carry domain meaning (token collision, duplicate vote) and
callers classify the failure with IsUniqueViolation, which understands
both lib/pq error codes and SQLite message text.

# Lookups

PollByToken is role-scoped: the same string presented under the wrong
role resolves to nothing. Missing rows surface as sql.ErrNoRows for the
caller to translate.
*/
package store
