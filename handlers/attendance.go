// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/middleware"
	"github.com/danielhkuo/nbforms-server/models"
)

// Attendance handles POST /attendance
// Appends an attendance submission for a user, stamped with the current
// time and whether the notebook's attendance was open at that instant.
func (h *SubmitHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	var req models.AttendanceRequest
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

	// A flag that was never set counts as closed
	wasOpen := notebook.AttendanceOpen != nil && *notebook.AttendanceOpen

	if err := db.InsertAttendance(tx, user.ID, notebook.ID, time.Now(), wasOpen); err != nil {
		slog.Error("failed to insert attendance submission", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	slog.Info("attendance recorded", "user_id", user.ID, "notebook", req.Notebook, "was_open", wasOpen)

	middleware.TextResponse(w, http.StatusOK, "ok")
}
