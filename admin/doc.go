// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package admin implements the operations behind the admin CLI.

# Attendance

Open or close a notebook's attendance window:

	err := admin.SetAttendanceOpen(conn, "lab01", true, create)

With create set, a missing notebook is created first; otherwise a
missing notebook is a NoSuchNotebookError.

# Clearing Data

Delete responses and attendance submissions, scoped to everything, one
user, or one notebook:

	err := admin.ClearAll(conn)
	err := admin.ClearUser(conn, "anakin")
	err := admin.ClearNotebook(conn, "lab01")

Users and notebooks themselves always survive a clear.

# Reports

Reports return CSV tables ([][]string) for rendering with export.ToCSV:

	table, err := admin.UsersReport(conn)
	table, err := admin.NotebooksReport(conn)
	table, err := admin.ResponsesReport(conn, "lab01") // username identity column
	table, err := admin.AttendanceReport(conn, "lab01")

# Seeding Users

Bulk-create users from a two-column (username, password) CSV:

	n, err := admin.SeedUsers(conn, file, hasher)

The header row must be exactly "username,password". The whole file
commits as one transaction; one malformed row means no users are
created.
*/
package admin
