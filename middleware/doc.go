// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /auth", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Response Helpers

Write plain-text responses (the API speaks plain text, not JSON):

	middleware.TextResponse(w, http.StatusOK, apiKey)
	middleware.ErrorResponse(w, http.StatusBadRequest, "no notebook specified")

Write CSV exports:

	middleware.CSVResponse(w, http.StatusOK, body)

# JSON Parsing

Parse JSON request bodies:

	var req models.AuthRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
*/
package middleware
