// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/models"
	"github.com/danielhkuo/nbforms-server/testutil"
)

func testHasher() auth.PasswordHasher {
	// MinCost keeps the test suite fast
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

func TestAuth_NewUserRegisters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAuthHandler(conn, testutil.GetTestConfig(), testHasher())

	req := testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "padawan"}, nil)
	w := httptest.NewRecorder()
	handler.Auth(w, req)

	testutil.AssertStatus(t, w, 200)

	apiKey := w.Body.String()
	if len(apiKey) != 64 {
		t.Errorf("API key length = %d, want 64", len(apiKey))
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}

	var storedKey, storedHash string
	if err := conn.QueryRow(`SELECT api_key, password_hash FROM users WHERE username = $1`, "anakin").Scan(&storedKey, &storedHash); err != nil {
		t.Fatal(err)
	}
	if storedKey != apiKey {
		t.Error("stored API key does not match the returned key")
	}
	if storedHash == "" || storedHash == "padawan" {
		t.Error("password was not stored hashed")
	}
}

func TestAuth_MissingFields(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAuthHandler(conn, testutil.GetTestConfig(), testHasher())

	tests := []struct {
		name    string
		body    models.AuthRequest
		wantMsg string
	}{
		{"missing username", models.AuthRequest{Password: "padawan"}, "no username specified"},
		{"missing password", models.AuthRequest{Username: "anakin"}, "no password specified"},
		{"missing both", models.AuthRequest{}, "no username specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Auth(w, req)

			testutil.AssertStatus(t, w, 400)
			if w.Body.String() != tt.wantMsg {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantMsg)
			}
		})
	}

	// Validation failures must not create rows
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("user count = %d, want 0", count)
	}
}

func TestAuth_ReissueReplacesKey(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAuthHandler(conn, testutil.GetTestConfig(), testHasher())

	authOnce := func() string {
		req := testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "padawan"}, nil)
		w := httptest.NewRecorder()
		handler.Auth(w, req)
		testutil.AssertStatus(t, w, 200)
		return w.Body.String()
	}

	first := authOnce()
	second := authOnce()

	if first == second {
		t.Error("re-authentication returned the same API key")
	}

	// Still one user; only the newest key works
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}

	var storedKey string
	if err := conn.QueryRow(`SELECT api_key FROM users WHERE username = $1`, "anakin").Scan(&storedKey); err != nil {
		t.Fatal(err)
	}
	if storedKey != second {
		t.Error("stored key is not the most recently issued one")
	}
}

func TestAuth_InvalidPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAuthHandler(conn, testutil.GetTestConfig(), testHasher())

	req := testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "padawan"}, nil)
	w := httptest.NewRecorder()
	handler.Auth(w, req)
	testutil.AssertStatus(t, w, 200)

	req = testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "sith-lord"}, nil)
	w = httptest.NewRecorder()
	handler.Auth(w, req)

	testutil.AssertStatus(t, w, 400)
	if w.Body.String() != "invalid login" {
		t.Errorf("body = %q, want %q", w.Body.String(), "invalid login")
	}
}

func TestAuth_RehashOnStaleCost(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()

	// First login hashes at the minimum cost
	oldHandler := NewAuthHandler(conn, cfg, auth.NewPasswordHasher(bcrypt.MinCost))
	req := testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "padawan"}, nil)
	w := httptest.NewRecorder()
	oldHandler.Auth(w, req)
	testutil.AssertStatus(t, w, 200)

	// Second login verifies with a higher configured cost and must rehash
	newCost := bcrypt.MinCost + 1
	newHandler := NewAuthHandler(conn, cfg, auth.NewPasswordHasher(newCost))
	req = testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: "anakin", Password: "padawan"}, nil)
	w = httptest.NewRecorder()
	newHandler.Auth(w, req)
	testutil.AssertStatus(t, w, 200)

	var storedHash string
	if err := conn.QueryRow(`SELECT password_hash FROM users WHERE username = $1`, "anakin").Scan(&storedHash); err != nil {
		t.Fatal(err)
	}
	cost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil {
		t.Fatalf("stored hash is not a bcrypt hash: %v", err)
	}
	if cost != newCost {
		t.Errorf("stored hash cost = %d, want %d", cost, newCost)
	}
}

func TestAuth_NoAuthModeMintsGuests(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	cfg.NoAuthRequired = true
	handler := NewAuthHandler(conn, cfg, testHasher())

	// Empty body is fine in no-auth mode
	for i := 1; i <= 2; i++ {
		req := testutil.MakeRequest("POST", "/auth", nil, nil)
		w := httptest.NewRecorder()
		handler.Auth(w, req)

		testutil.AssertStatus(t, w, 200)
		if len(w.Body.String()) != 64 {
			t.Errorf("API key length = %d, want 64", len(w.Body.String()))
		}

		// Every call mints a fresh identity
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM users WHERE no_auth`).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != i {
			t.Errorf("guest count = %d, want %d", count, i)
		}
	}

	var username string
	if err := conn.QueryRow(`SELECT username FROM users LIMIT 1`).Scan(&username); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(username, "noauth_") {
		t.Errorf("guest username = %q, want noauth_ prefix", username)
	}
}

func TestAuth_GuestCannotLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	cfg.NoAuthRequired = true
	guestHandler := NewAuthHandler(conn, cfg, testHasher())

	req := testutil.MakeRequest("POST", "/auth", nil, nil)
	w := httptest.NewRecorder()
	guestHandler.Auth(w, req)
	testutil.AssertStatus(t, w, 200)

	var username string
	if err := conn.QueryRow(`SELECT username FROM users WHERE no_auth`).Scan(&username); err != nil {
		t.Fatal(err)
	}

	// Guest identities are single-use: a password login against one fails
	// no matter the password
	handler := NewAuthHandler(conn, testutil.GetTestConfig(), testHasher())
	for _, password := range []string{"guessed", "padawan"} {
		req := testutil.MakeRequest("POST", "/auth", models.AuthRequest{Username: username, Password: password}, nil)
		w := httptest.NewRecorder()
		handler.Auth(w, req)

		testutil.AssertStatus(t, w, 400)
		if w.Body.String() != "invalid login" {
			t.Errorf("body = %q, want %q", w.Body.String(), "invalid login")
		}
	}
}
