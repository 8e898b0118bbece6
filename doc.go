// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the nbforms server.

nbforms-server is a data-collection backend for classroom notebooks:
students authenticate, submit per-question responses and attendance
check-ins, and instructors export the collected data as CSV.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_TYPE=sqlite DATABASE_URL=nbforms.db go run main.go

Or with flags:

	go run main.go -p 5000 -t sqlite -d nbforms.db

# Admin CLI

The same binary doubles as the admin CLI when the first argument is a
command name:

	go run main.go attendance open lab01
	go run main.go clear user anakin --force
	go run main.go reports responses lab01 out.csv
	go run main.go seed roster.csv

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite file path
  - NO_AUTH_REQUIRED (-no-auth): Mint guest identities instead of logins
  - BCRYPT_COST (-bcrypt-cost): Password hashing cost

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, submit, attendance, data)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, plain-text and CSV response helpers
  - models: Request and domain types
  - auth: API key generation, password hashing, username hashing
  - db: Schema creation and queries
  - export: Response pivoting and CSV rendering
  - admin: Operations behind the admin CLI
  - cli: Admin CLI command dispatch
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
