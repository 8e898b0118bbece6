// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/db"
)

// ErrBadSeedHeader is returned when a seed file's header row is not exactly
// "username,password".
var ErrBadSeedHeader = errors.New("CSV file does not contain expected headers")

// MalformedRowError is returned when a seed file data row does not have
// exactly two columns. Row counts the header as row 1.
type MalformedRowError struct {
	Row int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d does not have 2 columns", e.Row)
}

// SeedUsers bulk-creates users from a two-column (username, password) CSV.
// The whole file commits as one transaction; any malformed row means no
// users are created. Returns the number of users seeded.
func SeedUsers(conn *sql.DB, r io.Reader, hasher auth.PasswordHasher) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 || len(rows[0]) != 2 || rows[0][0] != "username" || rows[0][1] != "password" {
		return 0, ErrBadSeedHeader
	}

	// Validate shape before writing anything
	for i, row := range rows[1:] {
		if len(row) != 2 {
			return 0, &MalformedRowError{Row: i + 2}
		}
	}

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows[1:] {
		hash, err := hasher.Hash(row[1])
		if err != nil {
			return 0, fmt.Errorf("failed to hash password for %q: %w", row[0], err)
		}

		if _, err := db.CreateUser(tx, row[0], hash, nil, false); err != nil {
			return 0, fmt.Errorf("failed to create user %q: %w", row[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(rows) - 1, nil
}
