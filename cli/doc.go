// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cli dispatches admin CLI commands.

The server binary doubles as the admin CLI: when the first argument is
a command name, main hands the arguments to cli.Run instead of starting
the HTTP server.

# Commands

	attendance open|close <notebook> [--create]
	clear all|user <username>|notebook <notebook> [--force]
	reports users|notebooks [dest]
	reports responses|attendance <notebook> [dest]
	seed <csv-file>

Destructive clears prompt for confirmation unless --force is given.
Reports write to the dest file when given, stdout otherwise.

Configuration comes from the same environment variables the server
reads (DATABASE_URL, DATABASE_TYPE, BCRYPT_COST).
*/
package cli
