package models

import "time"

// ImportJobState mirrors domain.ImportJobState for persistence.
type ImportJobState string

// ImportJob is the database shape of an import job row. The
// (WorkspaceID, Year, Month) triple carries a unique constraint.
type ImportJob struct {
	JobID        string         `json:"jobID"`
	WorkspaceID  string         `json:"workspaceID"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	State        ImportJobState `json:"state"`
	ImportedRows int            `json:"importedRows"`
	RejectedRows int            `json:"rejectedRows"`
	Errors       []string       `json:"errors"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
