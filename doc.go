// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the guestpoll API server.

Guestpoll is an invite-only polling service: a user creates a
multiple-choice poll with a fixed guest list, each guest gets one vote,
and the poll is reachable only through three unguessable capability
links (vote, results, disable).

# Starting the Server

The server requires environment variables or CLI flags for
configuration (a .env file is loaded if present):

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -t postgres -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string
  - JWT_SECRET (-jwt-secret): Identity token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (-b): Public base URL for capability links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Identity verification, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - tokens: Capability token generation
  - lifecycle: Poll orchestration (create, resolve, disable, vote)
  - store: Data access (polls, guests, votes)
  - results: Tally aggregation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
