// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the guestpoll API.

# Handler Types

Each handler is a struct with database, config, and lifecycle service
dependencies:

  - PollHandler: Poll creation, per-user lists, guest listing, disable
  - VotingHandler: Ballot page data and vote submission
  - ResultsHandler: Tally retrieval

Handlers are created via constructor functions that accept *sql.DB and
Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Capability Links

The three unguessable links per poll are the whole access model:

	POST /polls            → CreatePoll (returns vote/result/disable URLs)
	GET  /vote/{token}     → GetBallot
	POST /vote/{token}     → SubmitVote (returns result URL)
	GET  /results/{token}  → GetResults
	POST /disable/{token}  → Disable (idempotent)

Handlers compose BASE_URL with the bare tokens the lifecycle returns;
the core never sees URLs.

# Identity

Creation, poll lists, guest listing, and voting require a verified
Bearer token (middleware.RequireUser); the claims supply the owner id
and the voter email used for invite checks. Result and disable links
authorize by token possession alone.

# Error Mapping

writeLifecycleError translates the lifecycle taxonomy:

	ValidationError, ErrInvalidChoice → 400
	ErrNotFound                       → 404 (always the same generic body)
	ErrNotInvited                     → 403
	ErrAlreadyVoted, ErrPollDisabled  → 409
	anything else                     → 500, logged
*/
package handlers
