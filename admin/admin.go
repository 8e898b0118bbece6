// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/models"
)

// NoSuchUserError is returned when an operation names a username that does
// not exist.
type NoSuchUserError struct {
	Username string
}

func (e *NoSuchUserError) Error() string {
	return "No such user: " + e.Username
}

// NoSuchNotebookError is returned when an operation names a notebook
// identifier that does not exist.
type NoSuchNotebookError struct {
	Identifier string
}

func (e *NoSuchNotebookError) Error() string {
	return "No such notebook: " + e.Identifier
}

// SetAttendanceOpen opens or closes attendance for a notebook. With create
// set, a missing notebook is created first; otherwise it is an error.
func SetAttendanceOpen(conn *sql.DB, identifier string, open, create bool) error {
	notebook, err := findNotebook(conn, identifier, create)
	if err != nil {
		return err
	}

	return db.SetAttendanceOpen(conn, notebook.ID, open)
}

// ClearAll deletes every response and attendance submission. Users and
// notebooks stay.
func ClearAll(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM responses`); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attendance_submissions`); err != nil {
		return fmt.Errorf("failed to delete attendance submissions: %w", err)
	}

	return tx.Commit()
}

// ClearUser deletes all responses and attendance submissions for one user.
func ClearUser(conn *sql.DB, username string) error {
	user, err := db.GetUserByUsername(conn, username)
	if err == sql.ErrNoRows {
		return &NoSuchUserError{Username: username}
	}
	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM responses WHERE user_id = $1`, user.ID); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attendance_submissions WHERE user_id = $1`, user.ID); err != nil {
		return fmt.Errorf("failed to delete attendance submissions: %w", err)
	}

	return tx.Commit()
}

// ClearNotebook deletes all responses and attendance submissions for one
// notebook.
func ClearNotebook(conn *sql.DB, identifier string) error {
	notebook, err := findNotebook(conn, identifier, false)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM responses WHERE notebook_id = $1`, notebook.ID); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attendance_submissions WHERE notebook_id = $1`, notebook.ID); err != nil {
		return fmt.Errorf("failed to delete attendance submissions: %w", err)
	}

	return tx.Commit()
}

func findNotebook(q db.Querier, identifier string, create bool) (models.Notebook, error) {
	if create {
		return db.GetOrCreateNotebook(q, identifier)
	}

	notebook, err := db.GetNotebook(q, identifier)
	if err == sql.ErrNoRows {
		return models.Notebook{}, &NoSuchNotebookError{Identifier: identifier}
	}
	if err != nil {
		return models.Notebook{}, fmt.Errorf("failed to query notebook: %w", err)
	}
	return notebook, nil
}
