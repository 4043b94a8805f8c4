package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	"github.com/leftsolutions/transactions_processor/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for imported transactions.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// ReplaceMonthlyTransactions deletes the period's stored rows, bulk-inserts
// the new batch and writes the job's completed outcome, all within one DB
// transaction. Concurrent readers either see the previous import in full or
// the new one, never the gap between delete and insert.
func (r *PgxTransactionRepository) ReplaceMonthlyTransactions(ctx context.Context, records []domain.Transaction, completedJob domain.ImportJob) error {
	workspaceID := completedJob.WorkspaceID
	period := completedJob.Period

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	deleteQuery := `
		DELETE FROM transactions
		WHERE workspace_id = $1 AND year = $2 AND month = $3;
	`
	if _, err := tx.Exec(ctx, deleteQuery, workspaceID, period.Year, period.Month); err != nil {
		return apperrors.NewAppError(500, "failed to delete transactions for "+workspaceID+" "+period.String(), err)
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO transactions (transaction_id, workspace_id, year, month, iban, transaction_date, currency, category, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, record := range records {
		modelTxn := mapping.ToModelTransaction(record)
		batch.Queue(insertQuery,
			modelTxn.TransactionID,
			modelTxn.WorkspaceID,
			modelTxn.Year,
			modelTxn.Month,
			modelTxn.IBAN,
			modelTxn.Date,
			modelTxn.Currency,
			modelTxn.Category,
			modelTxn.Amount,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction insert batch for "+workspaceID+" "+period.String(), err)
	}

	modelJob := mapping.ToModelImportJob(completedJob)
	jobQuery := `
		INSERT INTO import_jobs (job_id, workspace_id, year, month, state, imported_rows, rejected_rows, errors, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (workspace_id, year, month) DO UPDATE
		SET state = EXCLUDED.state,
		    imported_rows = EXCLUDED.imported_rows,
		    rejected_rows = EXCLUDED.rejected_rows,
		    errors = EXCLUDED.errors,
		    updated_at = EXCLUDED.updated_at;
	`
	if _, err := tx.Exec(ctx, jobQuery,
		modelJob.JobID,
		modelJob.WorkspaceID,
		modelJob.Year,
		modelJob.Month,
		modelJob.State,
		modelJob.ImportedRows,
		modelJob.RejectedRows,
		modelJob.Errors,
		modelJob.UpdatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to write import job outcome for "+workspaceID+" "+period.String(), err)
	}

	return r.Commit(ctx, tx)
}
