// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the rejection paths of the poll lifecycle.
// Handlers map these onto HTTP statuses; nothing here is retried.
var (
	// ErrNotFound covers every failed token or id resolution. It is
	// deliberately generic: callers never learn whether the string was
	// wrong, role-mismatched, or belonged to a deleted poll.
	ErrNotFound = errors.New("poll not found")

	ErrPollDisabled  = errors.New("poll is disabled")
	ErrNotInvited    = errors.New("not invited to this poll")
	ErrAlreadyVoted  = errors.New("already voted on this poll")
	ErrInvalidChoice = errors.New("selection contains invalid choices")

	// ErrTokenCollision is an internal fault: bounded regeneration ran
	// out of attempts. Logged and surfaced as a server error.
	ErrTokenCollision = errors.New("capability token collision")
)

// ValidationError reports bad input shape on poll creation or vote
// submission. The message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
