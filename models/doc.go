// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - AuthRequest: username, password
  - SubmitRequest: api_key, notebook, responses
  - ResponseEntry: identifier, response (optional)
  - AttendanceRequest: api_key, notebook
  - DataRequest: notebook, questions, user_hashes

# Domain Types

Internal data structures:

  - User: credentials, API key, and guest flag
  - Notebook: identifier and attendance state
  - Response: one answer to one question
  - AttendanceSubmission: one check-in, joined with user and notebook

Nullable database columns map to pointer fields (APIKey, NoAuth,
AttendanceOpen); nil means the column was never set.

# Report Rows

Domain types convert to CSV report rows for the admin CLI:

	table := [][]string{models.UserReportHeader()}
	table = append(table, user.ReportRow())

Timestamps render as RFC 3339; booleans as "true"/"false", with unset
flags reading as false.
*/
package models
