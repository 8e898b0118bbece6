// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides API key generation, password hashing, and
username hashing.

# API Keys

API keys are random 32-byte secrets, hex encoded:

	key, err := auth.GenerateAPIKey() // 64 hex characters

A fresh key is minted on every successful login; the previous key stops
working. Clients send the key in request bodies to /submit, /attendance,
and /data.

# Passwords

Passwords are hashed with bcrypt. The hasher carries its configured
cost so stale hashes can be upgraded on login:

	hasher := auth.NewPasswordHasher(cost) // 0 = library default
	hash, err := hasher.Hash(password)
	ok, needsRehash := hasher.Verify(hash, password)

When needsRehash is true the stored hash was produced at a lower cost
than currently configured; the caller should re-hash and store.

# Username Hashes

Anonymized exports replace usernames with truncated SHA-256 digests:

	h := auth.HashUsername("anakin") // 20 hex characters

The hash is deterministic, so repeated exports of the same roster stay
joinable while the row order is shuffled per export.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(32)  // 64 hex characters
*/
package auth
