// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/nbforms-server/export"
	"github.com/danielhkuo/nbforms-server/models"
)

// UsersReport returns a CSV table of all users, ordered by username.
func UsersReport(conn *sql.DB) ([][]string, error) {
	rows, err := conn.Query(`
		SELECT id, username, no_auth FROM users ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	table := [][]string{models.UserReportHeader()}
	for rows.Next() {
		var u models.User
		var noAuth sql.NullBool

		if err := rows.Scan(&u.ID, &u.Username, &noAuth); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if noAuth.Valid {
			u.NoAuth = &noAuth.Bool
		}

		table = append(table, u.ReportRow())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return table, nil
}

// NotebooksReport returns a CSV table of all notebooks, ordered by
// identifier.
func NotebooksReport(conn *sql.DB) ([][]string, error) {
	rows, err := conn.Query(`
		SELECT id, identifier, attendance_open FROM notebooks ORDER BY identifier
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer rows.Close()

	table := [][]string{models.NotebookReportHeader()}
	for rows.Next() {
		var nb models.Notebook
		var open sql.NullBool

		if err := rows.Scan(&nb.ID, &nb.Identifier, &open); err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		if open.Valid {
			nb.AttendanceOpen = &open.Bool
		}

		table = append(table, nb.ReportRow())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notebooks: %w", err)
	}

	return table, nil
}

// ResponsesReport returns the response export for a notebook with a
// username identity column.
func ResponsesReport(conn *sql.DB, identifier string) ([][]string, error) {
	notebook, err := findNotebook(conn, identifier, false)
	if err != nil {
		return nil, err
	}

	return export.Responses(conn, notebook.ID, nil, true, false)
}

// AttendanceReport returns a CSV table of attendance submissions for a
// notebook, ordered by username.
func AttendanceReport(conn *sql.DB, identifier string) ([][]string, error) {
	notebook, err := findNotebook(conn, identifier, false)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(`
		SELECT s.id, s.user_id, u.username, n.identifier, s.timestamp, s.was_open
		FROM attendance_submissions s
		JOIN users u ON u.id = s.user_id
		JOIN notebooks n ON n.id = s.notebook_id
		WHERE s.notebook_id = $1
		ORDER BY u.username
	`, notebook.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance submissions: %w", err)
	}
	defer rows.Close()

	table := [][]string{models.AttendanceReportHeader()}
	for rows.Next() {
		var s models.AttendanceSubmission
		if err := rows.Scan(&s.ID, &s.UserID, &s.Username, &s.NotebookIdentifier, &s.Timestamp, &s.WasOpen); err != nil {
			return nil, fmt.Errorf("failed to scan attendance submission: %w", err)
		}
		table = append(table, s.ReportRow())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance submissions: %w", err)
	}

	return table, nil
}
