// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/nbforms-server/models"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	// Create test request and recorder
	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	// Execute
	wrappedHandler(w, req)

	// Verify handler was called
	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	// Verify response was written correctly
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	// Test that logging doesn't interfere with various response codes
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"BadRequest", http.StatusBadRequest, "no username specified"},
		{"Unauthorized", http.StatusUnauthorized, "invalid login"},
		{"InternalError", http.StatusInternalServerError, "database error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/test", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestTextResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"api key", http.StatusOK, "deadbeef"},
		{"ok", http.StatusOK, "ok"},
		{"error", http.StatusBadRequest, "no notebook specified"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			TextResponse(w, tc.statusCode, tc.body)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if contentType != "text/plain; charset=utf-8" {
				t.Errorf("Expected Content-Type 'text/plain; charset=utf-8', got '%s'", contentType)
			}

			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestCSVResponse(t *testing.T) {
	w := httptest.NewRecorder()

	body := "q1,q2\na,b\n"
	CSVResponse(w, http.StatusOK, body)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Header().Get("Content-Type") != "text/csv" {
		t.Errorf("Expected Content-Type 'text/csv', got '%s'", w.Header().Get("Content-Type"))
	}

	if w.Body.String() != body {
		t.Errorf("Expected body '%s', got '%s'", body, w.Body.String())
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"username":"anakin","password":"podracer"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.AuthRequest
		err := ParseJSONBody(req, &parsed)

		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Username != "anakin" {
			t.Errorf("Expected username 'anakin', got '%s'", parsed.Username)
		}
		if parsed.Password != "podracer" {
			t.Errorf("Expected password 'podracer', got '%s'", parsed.Password)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		body := `{invalid json}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.AuthRequest
		err := ParseJSONBody(req, &parsed)

		if err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.AuthRequest
		err := ParseJSONBody(req, &parsed)

		if err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		body := `{"username":"anakin","password":"podracer","unknown_field":"ignored"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.AuthRequest
		err := ParseJSONBody(req, &parsed)

		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Username != "anakin" {
			t.Errorf("Expected username 'anakin', got '%s'", parsed.Username)
		}
	})

	t.Run("omitted response stays nil", func(t *testing.T) {
		body := `{"api_key":"k","notebook":"lab01","responses":[{"identifier":"q1"}]}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.SubmitRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(parsed.Responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(parsed.Responses))
		}
		if parsed.Responses[0].Response != nil {
			t.Error("Expected omitted response to stay nil")
		}
	})
}
