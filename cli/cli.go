// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danielhkuo/nbforms-server/admin"
	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/cliparse"
	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/export"
)

// IsCommand reports whether name is an admin CLI command.
func IsCommand(name string) bool {
	switch name {
	case "attendance", "clear", "reports", "seed":
		return true
	}
	return false
}

// Run executes an admin CLI command and returns the process exit code.
func Run(args []string) int {
	if err := run(args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := cliparse.FromEnv()
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		return err
	}

	switch args[0] {
	case "attendance":
		return runAttendance(conn, args[1:])
	case "clear":
		return runClear(conn, args[1:], stdin, stdout)
	case "reports":
		return runReports(conn, args[1:], stdout)
	case "seed":
		return runSeed(conn, args[1:], auth.NewPasswordHasher(cfg.BcryptCost), stdout)
	}
	return fmt.Errorf("unknown command: %s", args[0])
}

func runAttendance(conn *sql.DB, args []string) error {
	create, args := popFlag(args, "--create")
	if len(args) != 2 {
		return errors.New("usage: attendance open|close <notebook> [--create]")
	}

	var open bool
	switch args[0] {
	case "open":
		open = true
	case "close":
		open = false
	default:
		return fmt.Errorf("unknown attendance action: %s", args[0])
	}

	return admin.SetAttendanceOpen(conn, args[1], open, create)
}

func runClear(conn *sql.DB, args []string, stdin io.Reader, stdout io.Writer) error {
	force, args := popFlag(args, "--force")
	if len(args) < 1 {
		return errors.New("usage: clear all|user <username>|notebook <notebook> [--force]")
	}

	switch args[0] {
	case "all":
		if !force && !confirm(stdin, stdout, "Are you sure you want to delete everything?") {
			fmt.Fprintln(stdout, "clear all aborted")
			return nil
		}
		return admin.ClearAll(conn)

	case "user":
		if len(args) != 2 {
			return errors.New("usage: clear user <username> [--force]")
		}
		if !force && !confirm(stdin, stdout, "Are you sure you want to delete this user's data?") {
			fmt.Fprintln(stdout, "clear user aborted")
			return nil
		}
		return admin.ClearUser(conn, args[1])

	case "notebook":
		if len(args) != 2 {
			return errors.New("usage: clear notebook <notebook> [--force]")
		}
		if !force && !confirm(stdin, stdout, "Are you sure you want to delete this notebook's data?") {
			fmt.Fprintln(stdout, "clear notebook aborted")
			return nil
		}
		return admin.ClearNotebook(conn, args[1])
	}
	return fmt.Errorf("unknown clear target: %s", args[0])
}

func runReports(conn *sql.DB, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: reports users|notebooks|responses <notebook>|attendance <notebook> [dest]")
	}

	var table [][]string
	var err error
	rest := args[1:]

	switch args[0] {
	case "users":
		table, err = admin.UsersReport(conn)
	case "notebooks":
		table, err = admin.NotebooksReport(conn)
	case "responses":
		if len(rest) < 1 {
			return errors.New("usage: reports responses <notebook> [dest]")
		}
		table, err = admin.ResponsesReport(conn, rest[0])
		rest = rest[1:]
	case "attendance":
		if len(rest) < 1 {
			return errors.New("usage: reports attendance <notebook> [dest]")
		}
		table, err = admin.AttendanceReport(conn, rest[0])
		rest = rest[1:]
	default:
		return fmt.Errorf("unknown report: %s", args[0])
	}
	if err != nil {
		return err
	}

	body, err := export.ToCSV(table)
	if err != nil {
		return err
	}

	// Write to the dest file if given, stdout otherwise
	if len(rest) > 0 {
		return os.WriteFile(rest[0], []byte(body), 0o644)
	}
	_, err = io.WriteString(stdout, body)
	return err
}

func runSeed(conn *sql.DB, args []string, hasher auth.PasswordHasher, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: seed <csv-file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := admin.SeedUsers(conn, f, hasher)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Seeded %d users\n", n)
	return nil
}

// popFlag removes a boolean flag from args wherever it appears, so flags
// can follow positional arguments.
func popFlag(args []string, name string) (bool, []string) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == name {
			found = true
			continue
		}
		out = append(out, a)
	}
	return found, out
}

func confirm(stdin io.Reader, stdout io.Writer, prompt string) bool {
	fmt.Fprintf(stdout, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
