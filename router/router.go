// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/handlers"
	"github.com/danielhkuo/nbforms-server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hasher auth.PasswordHasher) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, hasher)
	submitHandler := handlers.NewSubmitHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Client operations
	mux.HandleFunc("POST /auth", middleware.WithLogging(authHandler.Auth))
	mux.HandleFunc("POST /submit", middleware.WithLogging(submitHandler.Submit))
	mux.HandleFunc("POST /attendance", middleware.WithLogging(submitHandler.Attendance))

	// Data export
	mux.HandleFunc("GET /data", middleware.WithLogging(dataHandler.Data))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nbforms-server API v1"))
	})

	return mux
}
