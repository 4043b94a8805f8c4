package services

import (
	"context"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// StatisticsSvcFacade serves monthly aggregations, gated on import
// completion.
type StatisticsSvcFacade interface {
	// GetMonthlyStatistics returns grouped rows for the query's period.
	// Returns apperrors.ErrNotReady when the month's import has not reached a
	// completed state; partial aggregations are never returned.
	GetMonthlyStatistics(ctx context.Context, workspaceID string, query domain.StatisticsQuery) ([]domain.StatisticsRow, error)
}
