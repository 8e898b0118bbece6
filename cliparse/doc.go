// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The admin CLI uses FromEnv directly, since its subcommands take no
server flags:

	cfg, err := cliparse.FromEnv()

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Connection string or sqlite file path
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - NoAuthRequired: Disable credentialed login
  - BcryptCost: Password hashing cost (0 = library default)

# CLI Flags

	-p           Server port
	-d           Database URL or file path
	-t           Database type
	-no-auth     Disable credentialed login
	-bcrypt-cost Password hashing cost

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	NO_AUTH_REQUIRED → -no-auth (the literal string "true")
	BCRYPT_COST      → -bcrypt-cost

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DatabaseType is not sqlite or postgres
  - DatabaseURL is missing (sqlite defaults to nbforms_server.db)
*/
package cliparse
