// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt. It is passed to
// the components that need it rather than living as package state, so the
// cost can be configured per deployment.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// A cost of 0 selects the library default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of a password at the configured cost.
func (h PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash, and whether the hash was
// produced with stale parameters and should be recomputed. Verification
// against an empty or malformed hash fails; guest accounts store an empty
// hash so they can never authenticate again.
func (h PasswordHasher) Verify(hash, password string) (ok, needsRehash bool) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false, false
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true, false
	}
	return true, cost < h.cost
}
