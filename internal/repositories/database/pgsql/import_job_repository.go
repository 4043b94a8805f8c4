package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	"github.com/leftsolutions/transactions_processor/internal/models"
	"github.com/leftsolutions/transactions_processor/internal/utils/mapping"
)

type PgxImportJobRepository struct {
	BaseRepository
}

// NewImportJobRepository creates a new repository for import job records.
func NewImportJobRepository(pool *pgxpool.Pool) portsrepo.ImportJobRepository {
	return &PgxImportJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ImportJobRepository = (*PgxImportJobRepository)(nil)

// TryMarkProcessing inserts the job as PROCESSING or flips an existing
// non-PROCESSING job back, in one conditional upsert. The WHERE clause on the
// conflict update is the compare-and-set that enforces single-flight: when
// the stored job is already PROCESSING no row is touched and
// ErrAlreadyProcessing is returned.
func (r *PgxImportJobRepository) TryMarkProcessing(ctx context.Context, job domain.ImportJob) error {
	modelJob := mapping.ToModelImportJob(job)
	query := `
		INSERT INTO import_jobs (job_id, workspace_id, year, month, state, imported_rows, rejected_rows, errors, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (workspace_id, year, month) DO UPDATE
		SET state = EXCLUDED.state,
		    errors = EXCLUDED.errors,
		    updated_at = EXCLUDED.updated_at
		WHERE import_jobs.state <> 'PROCESSING';
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelJob.JobID,
		modelJob.WorkspaceID,
		modelJob.Year,
		modelJob.Month,
		modelJob.State,
		modelJob.ImportedRows,
		modelJob.RejectedRows,
		modelJob.Errors,
		modelJob.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark import job processing", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyProcessing
	}
	return nil
}

// SaveOutcome upserts the job with its terminal outcome.
func (r *PgxImportJobRepository) SaveOutcome(ctx context.Context, job domain.ImportJob) error {
	modelJob := mapping.ToModelImportJob(job)
	query := `
		INSERT INTO import_jobs (job_id, workspace_id, year, month, state, imported_rows, rejected_rows, errors, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (workspace_id, year, month) DO UPDATE
		SET state = EXCLUDED.state,
		    imported_rows = EXCLUDED.imported_rows,
		    rejected_rows = EXCLUDED.rejected_rows,
		    errors = EXCLUDED.errors,
		    updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelJob.JobID,
		modelJob.WorkspaceID,
		modelJob.Year,
		modelJob.Month,
		modelJob.State,
		modelJob.ImportedRows,
		modelJob.RejectedRows,
		modelJob.Errors,
		modelJob.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save import job outcome", err)
	}
	return nil
}

// FindImportJob retrieves a job by its composite key.
func (r *PgxImportJobRepository) FindImportJob(ctx context.Context, workspaceID string, period domain.Period) (*domain.ImportJob, error) {
	query := `
		SELECT job_id, workspace_id, year, month, state, imported_rows, rejected_rows, errors, updated_at
		FROM import_jobs
		WHERE workspace_id = $1 AND year = $2 AND month = $3;
	`
	var modelJob models.ImportJob
	err := r.Pool.QueryRow(ctx, query, workspaceID, period.Year, period.Month).Scan(
		&modelJob.JobID,
		&modelJob.WorkspaceID,
		&modelJob.Year,
		&modelJob.Month,
		&modelJob.State,
		&modelJob.ImportedRows,
		&modelJob.RejectedRows,
		&modelJob.Errors,
		&modelJob.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find import job for "+workspaceID+" "+period.String(), err)
	}

	domainJob := mapping.ToDomainImportJob(modelJob)
	return &domainJob, nil
}
