// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and queries.

# Opening a Connection

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg) // sqlite (modernc.org/sqlite) or postgres (lib/pq)

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

The schema includes:

  - users: Credentials, API keys, and the no-auth guest flag
  - notebooks: One row per notebook identifier, with attendance state
  - responses: One row per (user, notebook, question), latest answer only
  - attendance_submissions: Append-only check-in log

# Relationships

	users     1──* responses
	notebooks 1──* responses
	users     1──* attendance_submissions
	notebooks 1──* attendance_submissions

All foreign keys use ON DELETE CASCADE.

# Queries

Query helpers take a Querier, satisfied by both *sql.DB and *sql.Tx,
so handlers can compose them inside transactions. Find-or-create
helpers insert first (ON CONFLICT DO NOTHING) and then read back, so
concurrent callers converge on one row. UpsertResponse overwrites in
place, keyed on (user, notebook, question).

All SQL uses $N placeholders and RETURNING clauses, which both
supported dialects accept.
*/
package db
