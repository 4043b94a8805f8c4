package repositories

import (
	"context"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// ImportJobRepository persists import job records keyed by
// (workspace, period).
type ImportJobRepository interface {
	// TryMarkProcessing atomically creates the job in PROCESSING state or
	// flips an existing non-PROCESSING job back to PROCESSING, clearing its
	// errors. Returns apperrors.ErrAlreadyProcessing when the stored job is
	// already PROCESSING; this compare-and-set is what closes the
	// single-flight race between concurrent duplicate starts.
	TryMarkProcessing(ctx context.Context, job domain.ImportJob) error

	// SaveOutcome upserts the job with its terminal outcome (completed,
	// with-warning or failed).
	SaveOutcome(ctx context.Context, job domain.ImportJob) error

	// FindImportJob returns the stored job, or apperrors.ErrNotFound when no
	// import was ever attempted for the key.
	FindImportJob(ctx context.Context, workspaceID string, period domain.Period) (*domain.ImportJob, error)
}
