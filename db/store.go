// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/nbforms-server/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so store operations can
// run standalone or inside a request transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// GetOrCreateUser finds a user by username, creating one with an empty
// password hash if absent. Insert-first: the unique constraint decides the
// race, and the loser re-reads the winner's row.
func GetOrCreateUser(q Querier, username string) (models.User, error) {
	var id int64
	err := q.QueryRow(`
		INSERT INTO users (username, password_hash) VALUES ($1, '')
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, username).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return GetUserByUsername(q, username)
}

// GetUserByUsername looks up a user by username.
// Returns sql.ErrNoRows if no such user exists.
func GetUserByUsername(q Querier, username string) (models.User, error) {
	return scanUser(q.QueryRow(`
		SELECT id, username, password_hash, api_key, no_auth
		FROM users WHERE username = $1
	`, username))
}

// GetUserByAPIKey looks up a user by their current API key.
// Returns sql.ErrNoRows if no user holds the key.
func GetUserByAPIKey(q Querier, apiKey string) (models.User, error) {
	return scanUser(q.QueryRow(`
		SELECT id, username, password_hash, api_key, no_auth
		FROM users WHERE api_key = $1
	`, apiKey))
}

// CreateUser inserts a fully-specified user row and returns its ID.
func CreateUser(q Querier, username, passwordHash string, apiKey *string, noAuth bool) (int64, error) {
	var key sql.NullString
	if apiKey != nil {
		key = sql.NullString{String: *apiKey, Valid: true}
	}

	var id int64
	err := q.QueryRow(`
		INSERT INTO users (username, password_hash, api_key, no_auth)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, passwordHash, key, noAuth).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return id, nil
}

// SetUserPassword overwrites a user's password hash.
func SetUserPassword(q Querier, userID int64, passwordHash string) error {
	_, err := q.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return nil
}

// SetUserAPIKey stores a freshly-issued API key for a user, replacing any
// previous key.
func SetUserAPIKey(q Querier, userID int64, apiKey string) error {
	_, err := q.Exec(`UPDATE users SET api_key = $1 WHERE id = $2`, apiKey, userID)
	if err != nil {
		return fmt.Errorf("failed to set API key: %w", err)
	}
	return nil
}

// GetOrCreateNotebook finds a notebook by identifier, creating it if absent.
// Same insert-first pattern as GetOrCreateUser.
func GetOrCreateNotebook(q Querier, identifier string) (models.Notebook, error) {
	var id int64
	err := q.QueryRow(`
		INSERT INTO notebooks (identifier) VALUES ($1)
		ON CONFLICT (identifier) DO NOTHING
		RETURNING id
	`, identifier).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return models.Notebook{}, fmt.Errorf("failed to insert notebook: %w", err)
	}

	return GetNotebook(q, identifier)
}

// GetNotebook looks up a notebook by identifier.
// Returns sql.ErrNoRows if no such notebook exists.
func GetNotebook(q Querier, identifier string) (models.Notebook, error) {
	var nb models.Notebook
	var open sql.NullBool

	err := q.QueryRow(`
		SELECT id, identifier, attendance_open
		FROM notebooks WHERE identifier = $1
	`, identifier).Scan(&nb.ID, &nb.Identifier, &open)
	if err != nil {
		return models.Notebook{}, err
	}

	if open.Valid {
		nb.AttendanceOpen = &open.Bool
	}
	return nb, nil
}

// SetAttendanceOpen toggles a notebook's attendance flag.
func SetAttendanceOpen(q Querier, notebookID int64, open bool) error {
	_, err := q.Exec(`UPDATE notebooks SET attendance_open = $1 WHERE id = $2`, open, notebookID)
	if err != nil {
		return fmt.Errorf("failed to set attendance flag: %w", err)
	}
	return nil
}

// UpsertResponse writes a user's latest answer to a question in a notebook,
// overwriting text and timestamp in place. At most one row exists per
// (user, notebook, question) triple; no answer history is kept.
func UpsertResponse(q Querier, userID, notebookID int64, questionIdentifier, response string, timestamp time.Time) error {
	_, err := q.Exec(`
		INSERT INTO responses (user_id, notebook_id, question_identifier, response, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, notebook_id, question_identifier) DO UPDATE SET
			response = EXCLUDED.response,
			timestamp = EXCLUDED.timestamp
	`, userID, notebookID, questionIdentifier, response, timestamp)
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}
	return nil
}

// InsertAttendance appends an attendance submission. Submissions are
// append-only events; repeat check-ins add rows rather than updating.
func InsertAttendance(q Querier, userID, notebookID int64, timestamp time.Time, wasOpen bool) error {
	_, err := q.Exec(`
		INSERT INTO attendance_submissions (user_id, notebook_id, timestamp, was_open)
		VALUES ($1, $2, $3, $4)
	`, userID, notebookID, timestamp, wasOpen)
	if err != nil {
		return fmt.Errorf("failed to insert attendance submission: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var apiKey sql.NullString
	var noAuth sql.NullBool

	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &apiKey, &noAuth); err != nil {
		return models.User{}, err
	}

	if apiKey.Valid {
		u.APIKey = &apiKey.String
	}
	if noAuth.Valid {
		u.NoAuth = &noAuth.Bool
	}
	return u, nil
}
