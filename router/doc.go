// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the nbforms server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, hasher)

# Endpoints

Health:

	GET /health

Client operations (API key in request body):

	POST /auth       - Log in or register, returns an API key
	POST /submit     - Record responses to a notebook
	POST /attendance - Record an attendance check-in

Data export:

	GET /data - Export a notebook's responses as CSV

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg, hasher)
	submitHandler := handlers.NewSubmitHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
