// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the nbforms server.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Login, registration, and guest identities
  - SubmitHandler: Response submission and attendance check-ins
  - DataHandler: CSV export of a notebook's responses

Handlers are created via constructor functions:

	authHandler := handlers.NewAuthHandler(db, cfg, hasher)
	submitHandler := handlers.NewSubmitHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg)

# Auth Flow

POST /auth takes a username and password and returns a fresh API key as
plain text. An unknown username registers on first login; a known one
must present the matching password. Hashes stored at a lower bcrypt
cost than configured are upgraded in place on successful login.

With no-auth mode enabled the handler skips credentials entirely and
mints a throwaway guest user per call.

# Submission Flow

POST /submit validates the API key, finds or creates the notebook, and
upserts one row per (user, notebook, question). Resubmitting a question
overwrites the previous answer. The whole batch commits in one
transaction; one malformed entry rejects the lot.

POST /attendance appends a check-in stamped with whether the notebook's
attendance window was open at the time.

# Export Flow

GET /data pivots a notebook's responses into a question-per-column CSV.
Rows carry no identity by default; user_hashes adds an anonymized
identity column and shuffles row order.

All responses are plain text; errors are short lowercase phrases like
"no such user" or "invalid JSON body".
*/
package handlers
