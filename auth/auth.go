// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// UsernameHashLength is the number of hex characters kept from the SHA-256
// digest when pseudonymizing a username. Collision risk at this length is
// accepted for classroom-scale user counts.
const UsernameHashLength = 20

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAPIKey creates a new API key for a user.
// Keys are 32 random bytes hex encoded (64 characters); issuing a new key
// for a user replaces the previous one.
func GenerateAPIKey() (string, error) {
	key, err := GenerateID(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return key, nil
}

// HashUsername creates a stable one-way hash of a username for
// pseudonymized exports. Returns the first 20 hex chars of SHA-256.
func HashUsername(username string) string {
	sum := sha256.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])[:UsernameHashLength]
}
