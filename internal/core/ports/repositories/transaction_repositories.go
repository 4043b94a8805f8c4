package repositories

import (
	"context"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// TransactionRepository persists imported transaction rows keyed by
// (workspace, period, transaction id).
type TransactionRepository interface {
	// ReplaceMonthlyTransactions runs the atomic replace-and-commit unit:
	// delete every stored transaction for the (workspace, period) key,
	// bulk-insert the new records and write the completed job outcome, all
	// inside one database transaction. On error nothing is applied and the
	// previously stored rows remain untouched.
	ReplaceMonthlyTransactions(ctx context.Context, records []domain.Transaction, completedJob domain.ImportJob) error
}
