// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// An in-memory sqlite database exists per connection, so the pool must
	// stay at a single connection
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
	}
}

// CreateTestUser creates a user with an issued API key and returns its ID
// and key. The password hash is left empty.
func CreateTestUser(t *testing.T, conn *sql.DB, username string) (int64, string) {
	t.Helper()

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		t.Fatalf("Failed to generate API key: %v", err)
	}

	id, err := db.CreateUser(conn, username, "", &apiKey, false)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id, apiKey
}

// CreateTestNotebook creates a notebook and returns its ID. attendanceOpen
// may be nil to leave the flag unset.
func CreateTestNotebook(t *testing.T, conn *sql.DB, identifier string, attendanceOpen *bool) int64 {
	t.Helper()

	var open sql.NullBool
	if attendanceOpen != nil {
		open = sql.NullBool{Bool: *attendanceOpen, Valid: true}
	}

	var id int64
	err := conn.QueryRow(`
		INSERT INTO notebooks (identifier, attendance_open) VALUES ($1, $2)
		RETURNING id
	`, identifier, open).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test notebook: %v", err)
	}

	return id
}

// AddTestResponse records a response for a user in a notebook
func AddTestResponse(t *testing.T, conn *sql.DB, userID, notebookID int64, question, response string) {
	t.Helper()

	if err := db.UpsertResponse(conn, userID, notebookID, question, response, time.Now()); err != nil {
		t.Fatalf("Failed to add test response: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}
