// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/middleware"
	"github.com/danielhkuo/nbforms-server/models"
)

type AuthHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	hasher auth.PasswordHasher
}

func NewAuthHandler(conn *sql.DB, cfg cliparse.Config, hasher auth.PasswordHasher) *AuthHandler {
	return &AuthHandler{db: conn, cfg: cfg, hasher: hasher}
}

// Auth handles POST /auth
// Authenticates a user (registering them on first login) and returns a
// fresh API key as plain text. In no-auth mode it skips credentials
// entirely and mints a single-use guest identity instead.
func (h *AuthHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if h.cfg.NoAuthRequired {
		h.authGuest(w)
		return
	}

	var req models.AuthRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no username specified")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no password specified")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	// Auto-registration: an unseen username gets a row created here, then
	// takes the empty-hash path below to set its password.
	user, err := db.GetOrCreateUser(tx, req.Username)
	if err != nil {
		slog.Error("failed to get or create user", "error", err, "username", req.Username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	// Guest identities are single-use; their empty hash must not be treated
	// as "password never set".
	if user.NoAuth != nil && *user.NoAuth {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid login")
		return
	}

	if user.PasswordHash == "" {
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to authenticate")
			return
		}
		if err := db.SetUserPassword(tx, user.ID, hash); err != nil {
			slog.Error("failed to set password", "error", err, "user_id", user.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
			return
		}
	} else {
		ok, needsRehash := h.hasher.Verify(user.PasswordHash, req.Password)
		if !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid login")
			return
		}

		// Stored hash predates the configured cost; refresh it while we
		// still have the plaintext.
		if needsRehash {
			hash, err := h.hasher.Hash(req.Password)
			if err != nil {
				slog.Error("failed to rehash password", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to authenticate")
				return
			}
			if err := db.SetUserPassword(tx, user.ID, hash); err != nil {
				slog.Error("failed to update password hash", "error", err, "user_id", user.ID)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
				return
			}
		}
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}
	if err := db.SetUserAPIKey(tx, user.ID, apiKey); err != nil {
		slog.Error("failed to store API key", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	slog.Info("user authenticated", "user_id", user.ID)

	middleware.TextResponse(w, http.StatusOK, apiKey)
}

// authGuest mints a login-disabled user with a random username and returns
// its API key.
func (h *AuthHandler) authGuest(w http.ResponseWriter) {
	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	username := "noauth_" + uuid.NewString()
	userID, err := db.CreateUser(h.db, username, "", &apiKey, true)
	if err != nil {
		slog.Error("failed to create guest user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	slog.Info("guest user created", "user_id", userID)

	middleware.TextResponse(w, http.StatusOK, apiKey)
}
