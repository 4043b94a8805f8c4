package dto

import (
	"time"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// ImportJobStatusResponse is the API shape of an import job status. A key
// that was never imported is reported with state NOT_FOUND rather than an
// HTTP error.
type ImportJobStatusResponse struct {
	WorkspaceID  string    `json:"workspaceId"`
	Month        string    `json:"month"`
	State        string    `json:"state"`
	ImportedRows int       `json:"importedRows"`
	RejectedRows int       `json:"rejectedRows"`
	Errors       []string  `json:"errors"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToImportJobStatusResponse converts a domain ImportJob to its API shape.
func ToImportJobStatusResponse(job domain.ImportJob) ImportJobStatusResponse {
	errs := job.Errors
	if errs == nil {
		errs = []string{}
	}
	return ImportJobStatusResponse{
		WorkspaceID:  job.WorkspaceID,
		Month:        job.Period.String(),
		State:        string(job.State),
		ImportedRows: job.ImportedRows,
		RejectedRows: job.RejectedRows,
		Errors:       errs,
		UpdatedAt:    job.UpdatedAt,
	}
}
