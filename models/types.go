package models

import (
	"strconv"
	"time"
)

// Request types

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// One answer to one question. Response may be omitted, in which case the
// stored text is the empty string.
type ResponseEntry struct {
	Identifier string  `json:"identifier"`
	Response   *string `json:"response,omitempty"`
}

type SubmitRequest struct {
	APIKey    string          `json:"api_key"`
	Notebook  string          `json:"notebook"`
	Responses []ResponseEntry `json:"responses"`
}

type AttendanceRequest struct {
	APIKey   string `json:"api_key"`
	Notebook string `json:"notebook"`
}

type DataRequest struct {
	Notebook   string   `json:"notebook"`
	Questions  []string `json:"questions"`
	UserHashes bool     `json:"user_hashes"`
}

// Domain types

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	APIKey       *string
	NoAuth       *bool
}

type Notebook struct {
	ID             int64
	Identifier     string
	AttendanceOpen *bool
}

type Response struct {
	ID                 int64
	UserID             int64
	NotebookID         int64
	QuestionIdentifier string
	Response           string
	Timestamp          time.Time
}

// An attendance submission joined with its user and notebook, as used by
// the attendance report.
type AttendanceSubmission struct {
	ID                 int64
	UserID             int64
	Username           string
	NotebookIdentifier string
	Timestamp          time.Time
	WasOpen            bool
}

// Report rows

// UserReportHeader returns the column headers for User.ReportRow.
func UserReportHeader() []string {
	return []string{"id", "username", "no_auth"}
}

// ReportRow converts the user into a CSV report row.
func (u User) ReportRow() []string {
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.Username,
		strconv.FormatBool(u.NoAuth != nil && *u.NoAuth),
	}
}

// NotebookReportHeader returns the column headers for Notebook.ReportRow.
func NotebookReportHeader() []string {
	return []string{"id", "identifier", "attendance_open"}
}

// ReportRow converts the notebook into a CSV report row. An attendance flag
// that was never set reads as closed.
func (n Notebook) ReportRow() []string {
	return []string{
		strconv.FormatInt(n.ID, 10),
		n.Identifier,
		strconv.FormatBool(n.AttendanceOpen != nil && *n.AttendanceOpen),
	}
}

// AttendanceReportHeader returns the column headers for
// AttendanceSubmission.ReportRow.
func AttendanceReportHeader() []string {
	return []string{"id", "user id", "username", "notebook", "timestamp", "was_open"}
}

// ReportRow converts the submission into a CSV report row.
func (s AttendanceSubmission) ReportRow() []string {
	return []string{
		strconv.FormatInt(s.ID, 10),
		strconv.FormatInt(s.UserID, 10),
		s.Username,
		s.NotebookIdentifier,
		s.Timestamp.Format(time.RFC3339),
		strconv.FormatBool(s.WasOpen),
	}
}
