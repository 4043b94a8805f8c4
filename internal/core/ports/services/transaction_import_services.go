package services

import (
	"context"
	"io"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// TransactionImportSvcFacade coordinates parsing, the job state machine and
// the atomic replace of a month's transactions.
type TransactionImportSvcFacade interface {
	// ImportMonthly runs the whole import synchronously and returns the final
	// job status. Returns apperrors.ErrAlreadyProcessing when an import is in
	// flight for the key and apperrors.ErrValidation for batch-level
	// structural failures.
	ImportMonthly(ctx context.Context, workspaceID string, period domain.Period, csvStream io.Reader) (domain.ImportJob, error)

	// ImportMonthlyAsync marks the job PROCESSING, hands the heavy work to a
	// bounded worker pool and immediately returns the current status. The
	// file at csvPath is removed once the background import finishes.
	ImportMonthlyAsync(ctx context.Context, workspaceID string, period domain.Period, csvPath string) (domain.ImportJob, error)
}
