// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/export"
	"github.com/danielhkuo/nbforms-server/middleware"
	"github.com/danielhkuo/nbforms-server/models"
)

type DataHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDataHandler(conn *sql.DB, cfg cliparse.Config) *DataHandler {
	return &DataHandler{db: conn, cfg: cfg}
}

// Data handles GET /data
// Returns question responses for a notebook in CSV format, pseudonymized
// when user_hashes is set.
func (h *DataHandler) Data(w http.ResponseWriter, r *http.Request) {
	var req models.DataRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Notebook == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no notebook specified")
		return
	}

	notebook, err := db.GetOrCreateNotebook(h.db, req.Notebook)
	if err != nil {
		slog.Error("failed to get or create notebook", "error", err, "notebook", req.Notebook)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	table, err := export.Responses(h.db, notebook.ID, req.Questions, false, req.UserHashes)
	if errors.Is(err, export.ErrNoResponses) || errors.Is(err, export.ErrConflictingModes) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to export responses", "error", err, "notebook", req.Notebook)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	body, err := export.ToCSV(table)
	if err != nil {
		slog.Error("failed to serialize CSV", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to export responses")
		return
	}

	slog.Info("responses exported", "notebook", req.Notebook, "rows", len(table)-1, "user_hashes", req.UserHashes)

	middleware.CSVResponse(w, http.StatusOK, body)
}
