// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export pivots stored responses into CSV tables.

# Pivoting

Responses returns a header row plus one row per responding user, with
one column per question identifier:

	table, err := export.Responses(conn, notebookID, questions, usernames, userHashes)

Columns are the union of questions present in the data and questions
explicitly requested, sorted ascending; a question a user never
answered renders as an empty cell. Data rows are ordered by ascending
user ID, so column-only exports stay aligned across questions.

# Identity Columns

At most one identity mode may be set. With usernames, a leading "user"
column carries usernames (admin reports). With userHashes, the column
carries truncated SHA-256 digests and the data rows are shuffled, so
order reveals nothing about registration sequence.

# Rendering

ToCSV renders a table with encoding/csv:

	body, err := export.ToCSV(table)
*/
package export
