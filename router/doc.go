// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the guestpoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Poll management (authenticated, Bearer token):

	POST /polls             - Create poll with choices and guest list
	GET  /polls/mine        - Created and joined polls for the caller
	GET  /polls/{id}/guests - Owner-only invite list

Voting (authenticated; the verified email is the voter identity):

	GET  /vote/{token} - Ballot page data
	POST /vote/{token} - Submit vote

Capability links (no session; the token is the authorization):

	GET  /results/{token} - Rank-ordered tally
	POST /disable/{token} - Disable the poll (idempotent)

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
