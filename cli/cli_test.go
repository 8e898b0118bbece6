// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/db"
	"github.com/danielhkuo/nbforms-server/testutil"
)

func TestIsCommand(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"attendance", true},
		{"clear", true},
		{"reports", true},
		{"seed", true},
		{"serve", false},
		{"-p", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.name); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPopFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     bool
		wantRest []string
	}{
		{"absent", []string{"open", "lab01"}, false, []string{"open", "lab01"}},
		{"trailing", []string{"open", "lab01", "--create"}, true, []string{"open", "lab01"}},
		{"leading", []string{"--create", "open", "lab01"}, true, []string{"open", "lab01"}},
		{"middle", []string{"open", "--create", "lab01"}, true, []string{"open", "lab01"}},
		{"empty", nil, false, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := popFlag(tt.args, "--create")
			if got != tt.want {
				t.Errorf("popFlag() found = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("popFlag() rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // EOF without input
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(strings.NewReader(tt.input), &out, "Proceed?")
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Proceed? [y/N]: ") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestRunAttendance(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestNotebook(t, conn, "lab01", nil)

	if err := runAttendance(conn, []string{"open", "lab01"}); err != nil {
		t.Fatalf("runAttendance() error = %v", err)
	}
	nb, err := db.GetNotebook(conn, "lab01")
	if err != nil {
		t.Fatal(err)
	}
	if nb.AttendanceOpen == nil || !*nb.AttendanceOpen {
		t.Error("attendance was not opened")
	}

	if err := runAttendance(conn, []string{"close", "lab01"}); err != nil {
		t.Fatalf("runAttendance() error = %v", err)
	}
	nb, _ = db.GetNotebook(conn, "lab01")
	if nb.AttendanceOpen == nil || *nb.AttendanceOpen {
		t.Error("attendance was not closed")
	}

	// --create makes the notebook on the fly
	if err := runAttendance(conn, []string{"open", "lab02", "--create"}); err != nil {
		t.Fatalf("runAttendance() with --create error = %v", err)
	}
	if _, err := db.GetNotebook(conn, "lab02"); err != nil {
		t.Errorf("notebook was not created: %v", err)
	}

	if err := runAttendance(conn, []string{"toggle", "lab01"}); err == nil {
		t.Error("expected error for unknown action")
	}
	if err := runAttendance(conn, []string{"open"}); err == nil {
		t.Error("expected usage error for missing notebook")
	}
}

func TestRunClear(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	nb := testutil.CreateTestNotebook(t, conn, "lab01", nil)
	user, _ := testutil.CreateTestUser(t, conn, "anakin")
	testutil.AddTestResponse(t, conn, user, nb, "c3p0", "a1")

	responseCount := func() int {
		var n int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
			t.Fatal(err)
		}
		return n
	}

	// Declining the prompt leaves the data alone
	var out bytes.Buffer
	if err := runClear(conn, []string{"all"}, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runClear() error = %v", err)
	}
	if !strings.Contains(out.String(), "clear all aborted") {
		t.Errorf("output = %q, want abort notice", out.String())
	}
	if responseCount() != 1 {
		t.Error("declined clear deleted data")
	}

	// Accepting the prompt clears
	out.Reset()
	if err := runClear(conn, []string{"all"}, strings.NewReader("y\n"), &out); err != nil {
		t.Fatalf("runClear() error = %v", err)
	}
	if responseCount() != 0 {
		t.Error("confirmed clear left data behind")
	}

	// --force skips the prompt entirely
	testutil.AddTestResponse(t, conn, user, nb, "c3p0", "a1")
	out.Reset()
	if err := runClear(conn, []string{"user", "anakin", "--force"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("runClear() --force error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("forced clear wrote output: %q", out.String())
	}
	if responseCount() != 0 {
		t.Error("forced clear left data behind")
	}

	if err := runClear(conn, []string{"everything"}, strings.NewReader(""), &out); err == nil {
		t.Error("expected error for unknown clear target")
	}
}

func TestRunReports(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestUser(t, conn, "anakin")

	var out bytes.Buffer
	if err := runReports(conn, []string{"users"}, &out); err != nil {
		t.Fatalf("runReports() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "id,username,no_auth\n") {
		t.Errorf("output = %q, want users CSV", out.String())
	}
	if !strings.Contains(out.String(), "anakin") {
		t.Errorf("output = %q, missing user row", out.String())
	}

	// A dest argument writes the report to a file instead
	dest := filepath.Join(t.TempDir(), "users.csv")
	out.Reset()
	if err := runReports(conn, []string{"users", dest}, &out); err != nil {
		t.Fatalf("runReports() with dest error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("dest report wrote to stdout: %q", out.String())
	}
	body, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "anakin") {
		t.Errorf("file contents = %q, missing user row", body)
	}

	if err := runReports(conn, []string{"responses"}, &out); err == nil {
		t.Error("expected usage error for responses without a notebook")
	}
	if err := runReports(conn, []string{"bogus"}, &out); err == nil {
		t.Error("expected error for unknown report")
	}
}

func TestRunSeed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	path := filepath.Join(t.TempDir(), "users.csv")
	if err := os.WriteFile(path, []byte("username,password\nanakin,podracer\nleia,alderaan\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	var out bytes.Buffer
	if err := runSeed(conn, []string{path}, hasher, &out); err != nil {
		t.Fatalf("runSeed() error = %v", err)
	}
	if out.String() != "Seeded 2 users\n" {
		t.Errorf("output = %q, want %q", out.String(), "Seeded 2 users\n")
	}

	if _, err := db.GetUserByUsername(conn, "leia"); err != nil {
		t.Errorf("seeded user missing: %v", err)
	}

	if err := runSeed(conn, []string{filepath.Join(t.TempDir(), "missing.csv")}, hasher, &out); err == nil {
		t.Error("expected error for missing seed file")
	}
	if err := runSeed(conn, nil, hasher, &out); err == nil {
		t.Error("expected usage error for missing file argument")
	}
}
