// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tokens mints the unguessable capability tokens that gate every
poll operation.

# Capability Tokens

Each poll carries three role-scoped tokens (vote, result, disable).
A token is 16 random bytes rendered as 32 lowercase hex characters:

	token, err := tokens.New()

Tokens are pure random secrets, never derived from poll data, so
possession of one grants exactly one right on exactly one poll and
nothing can be recomputed from it. Generation is stateless; uniqueness
is enforced by the store's token table, with the lifecycle retrying a
bounded number of times if an insert ever collides.
*/
package tokens
