// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	schema := schemaSQLite
	if dialect == "postgres" {
		schema = schemaPostgres
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Integer primary keys are assigned in insertion order, so user IDs double
// as registration order. Timestamps are always written by the application,
// never defaulted by the store.

const schemaSQLite = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    api_key TEXT UNIQUE,
    no_auth BOOLEAN
);

-- Notebooks
CREATE TABLE IF NOT EXISTS notebooks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    identifier TEXT NOT NULL UNIQUE,
    attendance_open BOOLEAN
);

-- Responses
CREATE TABLE IF NOT EXISTS responses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    notebook_id INTEGER NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
    question_identifier TEXT NOT NULL,
    response TEXT NOT NULL DEFAULT '',
    timestamp TIMESTAMP NOT NULL,
    UNIQUE (user_id, notebook_id, question_identifier)
);

CREATE INDEX IF NOT EXISTS idx_responses_notebook_id ON responses(notebook_id);

-- Attendance submissions
CREATE TABLE IF NOT EXISTS attendance_submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    notebook_id INTEGER NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
    timestamp TIMESTAMP NOT NULL,
    was_open BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attendance_submissions_notebook_id ON attendance_submissions(notebook_id);
`

const schemaPostgres = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    api_key TEXT UNIQUE,
    no_auth BOOLEAN
);

-- Notebooks
CREATE TABLE IF NOT EXISTS notebooks (
    id BIGSERIAL PRIMARY KEY,
    identifier TEXT NOT NULL UNIQUE,
    attendance_open BOOLEAN
);

-- Responses
CREATE TABLE IF NOT EXISTS responses (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    notebook_id BIGINT NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
    question_identifier TEXT NOT NULL,
    response TEXT NOT NULL DEFAULT '',
    timestamp TIMESTAMP NOT NULL,
    UNIQUE (user_id, notebook_id, question_identifier)
);

CREATE INDEX IF NOT EXISTS idx_responses_notebook_id ON responses(notebook_id);

-- Attendance submissions
CREATE TABLE IF NOT EXISTS attendance_submissions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    notebook_id BIGINT NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
    timestamp TIMESTAMP NOT NULL,
    was_open BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attendance_submissions_notebook_id ON attendance_submissions(notebook_id);
`
