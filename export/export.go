// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/danielhkuo/nbforms-server/auth"
	"github.com/danielhkuo/nbforms-server/db"
)

var (
	ErrConflictingModes = errors.New("cannot export both usernames and user hashes")
	ErrNoResponses      = errors.New("no responses found")
)

// Responses pivots the responses for a notebook into a rectangular table,
// one row per user and one column per question. If questions is non-empty,
// only those questions are exported; a requested question nobody answered
// still yields an empty column. Setting usernames or userHashes prepends a
// "user" identity column with the raw username or a truncated hash of it.
//
// Rows are ordered by ascending user ID (registration order), except in
// hash mode where data rows are uniformly shuffled so row position does not
// leak registration order.
func Responses(q db.Querier, notebookID int64, questions []string, usernames, userHashes bool) ([][]string, error) {
	if usernames && userHashes {
		return nil, ErrConflictingModes
	}

	query := `
		SELECT u.id, u.username, r.question_identifier, r.response
		FROM responses r
		JOIN users u ON u.id = r.user_id
		WHERE r.notebook_id = $1`
	args := []any{notebookID}

	if len(questions) > 0 {
		placeholders := make([]string, len(questions))
		for i, question := range questions {
			args = append(args, question)
			placeholders[i] = fmt.Sprintf("$%d", i+2)
		}
		query += " AND r.question_identifier IN (" + strings.Join(placeholders, ", ") + ")"
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	// group responses by user and question
	columnSet := make(map[string]bool)
	byUser := make(map[int64]map[string]string)
	usernameByID := make(map[int64]string)

	for rows.Next() {
		var userID int64
		var username, question, response string
		if err := rows.Scan(&userID, &username, &question, &response); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}

		columnSet[question] = true
		if byUser[userID] == nil {
			byUser[userID] = make(map[string]string)
		}
		byUser[userID][question] = response
		usernameByID[userID] = username
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	if len(byUser) == 0 {
		return nil, ErrNoResponses
	}

	// ensure there is a column for every requested question
	for _, question := range questions {
		columnSet[question] = true
	}

	columns := make([]string, 0, len(columnSet))
	for question := range columnSet {
		columns = append(columns, question)
	}
	sort.Strings(columns)

	userIDs := make([]int64, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	header := make([]string, 0, len(columns)+1)
	if usernames || userHashes {
		header = append(header, "user")
	}
	header = append(header, columns...)

	table := [][]string{header}
	for _, userID := range userIDs {
		row := make([]string, 0, len(header))
		if userHashes {
			row = append(row, auth.HashUsername(usernameByID[userID]))
		} else if usernames {
			row = append(row, usernameByID[userID])
		}

		for _, question := range columns {
			row = append(row, byUser[userID][question])
		}
		table = append(table, row)
	}

	// pseudonymized rows would still be sorted by user ID, so shuffle them
	// to keep row position from identifying anyone
	if userHashes {
		data := table[1:]
		rand.Shuffle(len(data), func(i, j int) {
			data[i], data[j] = data[j], data[i]
		})
	}

	return table, nil
}
