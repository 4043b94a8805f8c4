package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
)

// statisticsService serves monthly aggregations. Every query is gated on the
// import job for the month having completed; partial data is never exposed.
type statisticsService struct {
	BaseService
	jobSvc    portssvc.ImportJobSvcFacade
	statsRepo portsrepo.StatisticsRepository
}

// NewStatisticsService creates the statistics service.
func NewStatisticsService(jobSvc portssvc.ImportJobSvcFacade, statsRepo portsrepo.StatisticsRepository) portssvc.StatisticsSvcFacade {
	return &statisticsService{jobSvc: jobSvc, statsRepo: statsRepo}
}

var _ portssvc.StatisticsSvcFacade = (*statisticsService)(nil)

func (s *statisticsService) GetMonthlyStatistics(ctx context.Context, workspaceID string, query domain.StatisticsQuery) ([]domain.StatisticsRow, error) {
	period := query.Period

	completed, err := s.jobSvc.IsCompleted(ctx, workspaceID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to check import completion for statistics",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()))
		return nil, err
	}
	if !completed {
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("Statistics not ready. Import not completed for workspaceId=%s, month=%s", workspaceID, period),
			apperrors.ErrNotReady)
	}

	groupBy := query.GroupBy
	if groupBy == "" {
		groupBy = domain.GroupBySummary
	}

	var rows []domain.StatisticsRow
	switch groupBy {
	case domain.GroupByCategory, domain.GroupByIBAN:
		rows, err = s.statsRepo.AggregateGrouped(ctx, workspaceID, period, groupBy)
	case domain.GroupBySummary:
		rows, err = s.statsRepo.AggregateSummary(ctx, workspaceID, period)
	default:
		return nil, apperrors.NewAppError(http.StatusBadRequest,
			fmt.Sprintf("unsupported groupBy value: %s", groupBy),
			apperrors.ErrValidation)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate monthly statistics",
			slog.String("workspace_id", workspaceID),
			slog.String("period", period.String()),
			slog.String("group_by", string(groupBy)))
		return nil, err
	}

	s.LogInfo(ctx, "Monthly statistics generated",
		slog.String("workspace_id", workspaceID),
		slog.String("period", period.String()),
		slog.String("group_by", string(groupBy)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
