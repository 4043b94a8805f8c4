package repositories

import (
	"context"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
)

// StatisticsRepository runs grouped aggregation queries over stored
// transactions.
type StatisticsRepository interface {
	// AggregateGrouped groups the period's transactions by category or IBAN,
	// computing per-group row count and amount sum, sorted by descending
	// total amount.
	AggregateGrouped(ctx context.Context, workspaceID string, period domain.Period, groupBy domain.StatisticsGroupBy) ([]domain.StatisticsRow, error)

	// AggregateSummary computes a single synthetic row covering all of the
	// period's transactions. Returns an empty slice when the period holds no
	// rows.
	AggregateSummary(ctx context.Context, workspaceID string, period domain.Period) ([]domain.StatisticsRow, error)
}
