// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package results aggregates votes into the rank-ordered tally a result
link displays.

	tallies, err := results.SortedTally(db, pollID)
	voters, err := results.TotalVoters(db, pollID)

The ordering is deterministic: count descending, then the choice's
creation ordinal ascending. Zero-vote choices are included. TotalVoters
counts distinct guests, so a multi-choice ballot contributes to several
counts but to the voter total exactly once.
*/
package results
