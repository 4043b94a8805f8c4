package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
)

// importJobService drives the persistent import job state machine. Jobs are
// created lazily on first touch and never deleted; missing jobs surface as a
// virtual NOT_FOUND status.
type importJobService struct {
	BaseService
	jobRepo portsrepo.ImportJobRepository
}

// NewImportJobService creates the job state machine service.
func NewImportJobService(jobRepo portsrepo.ImportJobRepository) portssvc.ImportJobSvcFacade {
	return &importJobService{jobRepo: jobRepo}
}

var _ portssvc.ImportJobSvcFacade = (*importJobService)(nil)

func (s *importJobService) MarkProcessing(ctx context.Context, workspaceID string, period domain.Period) error {
	job := domain.NewProcessingImportJob(workspaceID, period)
	if err := s.jobRepo.TryMarkProcessing(ctx, job); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyProcessing) {
			return err
		}
		s.LogError(ctx, err, "Failed to mark import job processing",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()))
		return err
	}
	return nil
}

func (s *importJobService) MarkCompleted(ctx context.Context, workspaceID string, period domain.Period, importedRows, rejectedRows int, errorMessages []string) error {
	job := s.loadOrNew(ctx, workspaceID, period).MarkCompleted(importedRows, rejectedRows, errorMessages)
	return s.jobRepo.SaveOutcome(ctx, job)
}

func (s *importJobService) MarkFailed(ctx context.Context, workspaceID string, period domain.Period, errorMessage string) error {
	job := s.loadOrNew(ctx, workspaceID, period).MarkFailed(errorMessage)
	return s.jobRepo.SaveOutcome(ctx, job)
}

// loadOrNew fetches the stored job so terminal transitions keep the counts
// they are meant to preserve, creating a fresh PROCESSING job when absent.
func (s *importJobService) loadOrNew(ctx context.Context, workspaceID string, period domain.Period) domain.ImportJob {
	job, err := s.jobRepo.FindImportJob(ctx, workspaceID, period)
	if err != nil {
		return domain.NewProcessingImportJob(workspaceID, period)
	}
	return *job
}

func (s *importJobService) GetStatus(ctx context.Context, workspaceID string, period domain.Period) (domain.ImportJob, error) {
	job, err := s.jobRepo.FindImportJob(ctx, workspaceID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFoundJob(workspaceID, period), nil
		}
		return domain.ImportJob{}, err
	}
	return *job, nil
}

func (s *importJobService) IsCompleted(ctx context.Context, workspaceID string, period domain.Period) (bool, error) {
	job, err := s.jobRepo.FindImportJob(ctx, workspaceID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return job.IsCompleted(), nil
}

// notFoundJob is the virtual status reported for keys never imported.
func notFoundJob(workspaceID string, period domain.Period) domain.ImportJob {
	return domain.ImportJob{
		WorkspaceID: workspaceID,
		Period:      period,
		State:       domain.ImportJobNotFound,
		Errors:      []string{},
		UpdatedAt:   time.Unix(0, 0).UTC(),
	}
}
