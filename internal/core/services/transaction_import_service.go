package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
	"github.com/leftsolutions/transactions_processor/internal/middleware"
	"github.com/leftsolutions/transactions_processor/internal/utils/csvparse"
)

const (
	defaultMaxStoredErrors = 200
	defaultImportWorkers   = 2
	defaultQueueCapacity   = 50
)

var (
	errorQuotePrefix = regexp.MustCompile(`^\d+\s+\w+\s+"`)
	errorLineBreaks  = regexp.MustCompile(`[\r\n]`)
)

// importTask is one queued background import.
type importTask struct {
	ctx         context.Context
	workspaceID string
	period      domain.Period
	csvPath     string
}

// transactionImportService orchestrates the monthly import: single-flight
// job transition, CSV parsing, and the atomic replace of the period's rows.
type transactionImportService struct {
	BaseService
	jobSvc          portssvc.ImportJobSvcFacade
	txnRepo         portsrepo.TransactionRepository
	maxStoredErrors int
	tasks           chan importTask
}

// TransactionImportServiceOption is a functional option for configuring the
// import service.
type TransactionImportServiceOption func(*transactionImportService)

// WithMaxStoredErrors bounds how many rejection messages a job retains. The
// cap limits stored document size only; rejected-row counts stay exact.
func WithMaxStoredErrors(n int) TransactionImportServiceOption {
	return func(s *transactionImportService) {
		if n > 0 {
			s.maxStoredErrors = n
		}
	}
}

// WithWorkerPool sizes the bounded pool serving async imports.
func WithWorkerPool(workers, queueCapacity int) TransactionImportServiceOption {
	return func(s *transactionImportService) {
		if workers > 0 && queueCapacity > 0 {
			s.tasks = make(chan importTask, queueCapacity)
			for i := 0; i < workers; i++ {
				go s.runWorker()
			}
		}
	}
}

// NewTransactionImportService creates the import orchestrator and starts its
// worker pool.
func NewTransactionImportService(jobSvc portssvc.ImportJobSvcFacade, txnRepo portsrepo.TransactionRepository, options ...TransactionImportServiceOption) portssvc.TransactionImportSvcFacade {
	svc := &transactionImportService{
		jobSvc:          jobSvc,
		txnRepo:         txnRepo,
		maxStoredErrors: defaultMaxStoredErrors,
	}

	for _, option := range options {
		option(svc)
	}

	if svc.tasks == nil {
		svc.tasks = make(chan importTask, defaultQueueCapacity)
		for i := 0; i < defaultImportWorkers; i++ {
			go svc.runWorker()
		}
	}

	return svc
}

var _ portssvc.TransactionImportSvcFacade = (*transactionImportService)(nil)

// ImportMonthly runs the whole import in the caller's goroutine.
func (s *transactionImportService) ImportMonthly(ctx context.Context, workspaceID string, period domain.Period, csvStream io.Reader) (domain.ImportJob, error) {
	if err := s.jobSvc.MarkProcessing(ctx, workspaceID, period); err != nil {
		return domain.ImportJob{}, err
	}

	if err := s.runImport(ctx, workspaceID, period, csvStream); err != nil {
		return domain.ImportJob{}, err
	}

	return s.jobSvc.GetStatus(ctx, workspaceID, period)
}

// ImportMonthlyAsync marks the job PROCESSING and queues the heavy work on
// the bounded pool. The returned status reflects the freshly started job.
func (s *transactionImportService) ImportMonthlyAsync(ctx context.Context, workspaceID string, period domain.Period, csvPath string) (domain.ImportJob, error) {
	if err := s.jobSvc.MarkProcessing(ctx, workspaceID, period); err != nil {
		removeQuietly(ctx, csvPath)
		return domain.ImportJob{}, err
	}

	// The caller's deadline must not bound the background work; keep the
	// request-scoped logger on the detached context.
	taskCtx := middleware.CtxWithLogger(context.WithoutCancel(context.Background()), s.GetLogger(ctx))

	task := importTask{ctx: taskCtx, workspaceID: workspaceID, period: period, csvPath: csvPath}
	select {
	case s.tasks <- task:
	default:
		s.LogWarn(ctx, "Import queue full, rejecting request",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()))
		s.markFailedBestEffort(ctx, workspaceID, period, "import queue full")
		removeQuietly(ctx, csvPath)
		return domain.ImportJob{}, apperrors.NewAppError(http.StatusServiceUnavailable, "import queue full", nil)
	}

	return s.jobSvc.GetStatus(ctx, workspaceID, period)
}

func (s *transactionImportService) runWorker() {
	for task := range s.tasks {
		s.runImportFile(task)
	}
}

func (s *transactionImportService) runImportFile(task importTask) {
	ctx := task.ctx
	defer removeQuietly(ctx, task.csvPath)

	file, err := os.Open(task.csvPath)
	if err != nil {
		s.LogError(ctx, err, "Failed to open uploaded import file",
			slog.String("workspace_id", task.workspaceID),
			slog.String("period", task.period.String()))
		s.markFailedBestEffort(ctx, task.workspaceID, task.period, "could not read uploaded file")
		return
	}
	defer file.Close()

	// Errors are already recorded on the job; nothing to surface here.
	_ = s.runImport(ctx, task.workspaceID, task.period, file)
}

// runImport parses the stream and executes the atomic replace. The job must
// already be in PROCESSING state. Any failure marks the job FAILED
// best-effort and is returned to the caller.
func (s *transactionImportService) runImport(ctx context.Context, workspaceID string, period domain.Period, csvStream io.Reader) error {
	rows, err := csvparse.Parse(workspaceID, csvStream, period)
	if err != nil {
		s.LogWarn(ctx, "Import aborted by batch-level parse failure",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()),
			slog.String("error", err.Error()))
		s.markFailedBestEffort(ctx, workspaceID, period, sanitizeErrorMessage(err.Error()))
		return err
	}

	validRecords := make([]domain.Transaction, 0, len(rows))
	rejectionMessages := []string{}
	for _, row := range rows {
		if row.IsValid() {
			validRecords = append(validRecords, *row.Record)
			continue
		}
		if len(rejectionMessages) < s.maxStoredErrors {
			rejectionMessages = append(rejectionMessages, sanitizeErrorMessage(row.Error))
		}
	}
	rejectedRows := len(rows) - len(validRecords)

	completedJob := domain.NewProcessingImportJob(workspaceID, period).
		MarkCompleted(len(validRecords), rejectedRows, rejectionMessages)

	if err := s.txnRepo.ReplaceMonthlyTransactions(ctx, validRecords, completedJob); err != nil {
		s.LogError(ctx, err, "Atomic replace failed, previously stored rows preserved",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()))
		s.markFailedBestEffort(ctx, workspaceID, period, sanitizeErrorMessage(err.Error()))
		return err
	}

	s.LogInfo(ctx, "Import finished",
		slog.String("workspace_id", workspaceID),
		slog.String("period", period.String()),
		slog.Int("imported_rows", len(validRecords)),
		slog.Int("rejected_rows", rejectedRows))
	return nil
}

// markFailedBestEffort records the failure on the job. Its own failure is
// logged, not retried and not surfaced further.
func (s *transactionImportService) markFailedBestEffort(ctx context.Context, workspaceID string, period domain.Period, errorMessage string) {
	if err := s.jobSvc.MarkFailed(ctx, workspaceID, period, errorMessage); err != nil {
		s.LogError(ctx, err, "Failed to mark import job failed",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()))
	}
}

// sanitizeErrorMessage strips structural quoting and control characters so
// that storage-layer error text never lands verbatim on a job record.
func sanitizeErrorMessage(message string) string {
	message = errorQuotePrefix.ReplaceAllString(message, "")
	message = strings.TrimSuffix(message, `"`)
	message = errorLineBreaks.ReplaceAllString(message, "")
	return strings.TrimSpace(message)
}

func removeQuietly(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		middleware.GetLoggerFromCtx(ctx).Warn("Could not delete temp import file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}
