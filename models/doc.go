// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, multiple_choices, choices, guests
  - SubmitVoteRequest: choice_ids

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id plus the three capability links
  - SubmitVoteResponse: result_url, message
  - BallotResponse: poll, choices, already_voted
  - ResultsResponse: poll, tallies, total_voters
  - UserPollsResponse: created, joined
  - GuestListResponse: poll_id, guests
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, active flag, and its three capability tokens
  - Choice: voting choice with label and stable ordinal
  - Guest: invited email on one poll
  - Vote: one guest's immutable choice selection
  - ChoiceTally: one row of a rank-ordered result

Capability tokens on Poll are tagged json:"-"; which links a caller may
see is a handler decision, never a serialization accident.

# Constants

Token roles:

	RoleVote    = "vote"
	RoleResult  = "result"
	RoleDisable = "disable"

Choice limits:

	MinChoices = 2
	MaxChoices = 5
*/
package models
