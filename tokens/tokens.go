// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Length is the fixed size of a capability token in characters.
// 16 random bytes rendered as lowercase hex: 128 bits of entropy,
// no delimiters, safe to embed in a URL path or query value.
const Length = 32

// New mints a random capability token.
// The caller treats the result as unique; the store's token table
// still rejects the (astronomically unlikely) collision on insert.
func New() (string, error) {
	b := make([]byte, Length/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
