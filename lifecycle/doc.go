// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle is the poll orchestrator. It owns the state machine
(Active → Disabled, terminal) and the rules around creating polls and
recording votes; the store package does the SQL, this package decides.

# Operations

	svc := lifecycle.NewService(db)
	poll, err := svc.CreatePoll(ownerID, title, multi, choiceTexts, guestEmails)
	poll, err := svc.ResolveByVoteToken(token)     // likewise Result, Disable
	err := svc.Disable(disableToken)                // idempotent
	resultToken, err := svc.SubmitVote(voteToken, voterEmail, choiceIDs)

# Creation

CreatePoll validates shape (non-empty title, 2-5 non-empty choices,
non-empty guest set), mints three distinct capability tokens with
bounded regeneration on collision, and writes poll, choices, guests,
and tokens in a single transaction. A poll either exists completely or
not at all.

# Vote Submission

SubmitVote runs its preconditions in a fixed order: token resolves,
poll active, voter invited (case-insensitive), no prior vote, all
selected choices belong to the poll, exactly one selection unless the
poll allows several. Failures report one of the sentinel errors and
leave no state behind. The final insert still races under the vote
table's unique constraint, so two concurrent submissions from the same
guest cannot both win; the loser gets ErrAlreadyVoted.

# Errors

ErrNotFound, ErrPollDisabled, ErrNotInvited, ErrAlreadyVoted,
ErrInvalidChoice for user-visible rejections, ValidationError for bad
input shape, ErrTokenCollision for the internal retry-exhausted fault.
*/
package lifecycle
