package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportJobState is the lifecycle state of a monthly import job.
type ImportJobState string

const (
	// ImportJobProcessing marks an import that has started but not finished.
	ImportJobProcessing ImportJobState = "PROCESSING"
	// ImportJobCompleted marks a finished import with no rejected rows.
	ImportJobCompleted ImportJobState = "COMPLETED"
	// ImportJobWithWarning marks a finished import where some rows were rejected.
	ImportJobWithWarning ImportJobState = "WITH_WARNING"
	// ImportJobFailed marks an import that aborted before committing.
	ImportJobFailed ImportJobState = "FAILED"
	// ImportJobNotFound is a virtual state reported for (workspace, period)
	// keys that have never been imported. It is never persisted.
	ImportJobNotFound ImportJobState = "NOT_FOUND"
)

// ImportJob is the durable record of one monthly import attempt, keyed
// uniquely by (WorkspaceID, Period). It is created lazily on the first import
// and overwritten in place by re-imports; normal operation never deletes it.
//
// Transition methods return a new value instead of mutating the receiver, so
// concurrent readers never observe a half-applied transition.
type ImportJob struct {
	JobID        string
	WorkspaceID  string
	Period       Period
	State        ImportJobState
	ImportedRows int
	RejectedRows int
	Errors       []string
	UpdatedAt    time.Time
}

// NewProcessingImportJob creates a fresh job in PROCESSING state.
func NewProcessingImportJob(workspaceID string, period Period) ImportJob {
	return ImportJob{
		JobID:       uuid.NewString(),
		WorkspaceID: workspaceID,
		Period:      period,
		State:       ImportJobProcessing,
		Errors:      []string{},
		UpdatedAt:   time.Now().UTC(),
	}
}

// MarkProcessing resets the job for a new attempt. Prior error messages are
// cleared; counts keep their last value until the attempt finishes.
func (j ImportJob) MarkProcessing() ImportJob {
	j.State = ImportJobProcessing
	j.Errors = []string{}
	j.UpdatedAt = time.Now().UTC()
	return j
}

// MarkCompleted records the outcome of a finished import. The resulting state
// is WITH_WARNING when any rows were rejected, COMPLETED otherwise.
func (j ImportJob) MarkCompleted(importedRows, rejectedRows int, errors []string) ImportJob {
	if rejectedRows > 0 {
		j.State = ImportJobWithWarning
	} else {
		j.State = ImportJobCompleted
	}
	j.ImportedRows = importedRows
	j.RejectedRows = rejectedRows
	if errors == nil {
		errors = []string{}
	}
	j.Errors = errors
	j.UpdatedAt = time.Now().UTC()
	return j
}

// MarkFailed records a fatal import failure. Counts keep their last value;
// the error list is replaced by the single failure reason.
func (j ImportJob) MarkFailed(errorMessage string) ImportJob {
	j.State = ImportJobFailed
	if errorMessage == "" {
		j.Errors = []string{}
	} else {
		j.Errors = []string{errorMessage}
	}
	j.UpdatedAt = time.Now().UTC()
	return j
}

// IsCompleted reports whether the job reached a terminal success state.
func (j ImportJob) IsCompleted() bool {
	return j.State == ImportJobCompleted || j.State == ImportJobWithWarning
}
