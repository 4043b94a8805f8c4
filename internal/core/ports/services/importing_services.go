package services

import (
	"context"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// ImportJobSvcFacade drives the import job state machine for a
// (workspace, period) key.
type ImportJobSvcFacade interface {
	// MarkProcessing creates the job or resets it to PROCESSING. Returns
	// apperrors.ErrAlreadyProcessing when an import is already in flight for
	// the key.
	MarkProcessing(ctx context.Context, workspaceID string, period domain.Period) error

	// MarkCompleted records counts and capped rejection messages; the
	// resulting state is WITH_WARNING when rejectedRows > 0, COMPLETED
	// otherwise.
	MarkCompleted(ctx context.Context, workspaceID string, period domain.Period, importedRows, rejectedRows int, errors []string) error

	// MarkFailed records a fatal failure; counts keep their last value.
	MarkFailed(ctx context.Context, workspaceID string, period domain.Period, errorMessage string) error

	// GetStatus returns the stored job, or a virtual NOT_FOUND job when the
	// key was never imported.
	GetStatus(ctx context.Context, workspaceID string, period domain.Period) (domain.ImportJob, error)

	// IsCompleted reports whether the stored state is COMPLETED or
	// WITH_WARNING. An absent job is not completed.
	IsCompleted(ctx context.Context, workspaceID string, period domain.Period) (bool, error)
}
