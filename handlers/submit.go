// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/middleware"
	"github.com/danielhkuo/nbforms-server/models"
)

type SubmitHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSubmitHandler(conn *sql.DB, cfg cliparse.Config) *SubmitHandler {
	return &SubmitHandler{db: conn, cfg: cfg}
}

// Submit handles POST /submit
// Writes a user's responses to questions in a notebook. All entries commit
// in one transaction; any invalid entry aborts the whole request.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.APIKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no api_key specified")
		return
	}
	if req.Notebook == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no notebook specified")
		return
	}
	if len(req.Responses) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no responses specified")
		return
	}

	// Validate every entry before touching the database so a bad entry
	// can't leave earlier entries written.
	for _, entry := range req.Responses {
		if entry.Identifier == "" {
			raw, _ := json.Marshal(entry)
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid response: "+string(raw))
			return
		}
	}

	user, err := db.GetUserByAPIKey(h.db, req.APIKey)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no such user")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	notebook, err := db.GetOrCreateNotebook(tx, req.Notebook)
	if err != nil {
		slog.Error("failed to get or create notebook", "error", err, "notebook", req.Notebook)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	now := time.Now()
	for _, entry := range req.Responses {
		text := ""
		if entry.Response != nil {
			text = *entry.Response
		}

		if err := db.UpsertResponse(tx, user.ID, notebook.ID, entry.Identifier, text, now); err != nil {
			slog.Error("failed to upsert response", "error", err, "question", entry.Identifier)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	slog.Info("responses submitted", "user_id", user.ID, "notebook", req.Notebook, "count", len(req.Responses))

	middleware.TextResponse(w, http.StatusOK, "ok")
}
