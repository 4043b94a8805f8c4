package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// groupColumns maps the grouping mode to the column it groups on. Keeping
// this closed set is what lets the group field be spliced into the query.
var groupColumns = map[domain.StatisticsGroupBy]string{
	domain.GroupByCategory: "category",
	domain.GroupByIBAN:     "iban",
}

type statisticsRepository struct {
	BaseRepository
}

// NewStatisticsRepository creates a new statistics repository.
func NewStatisticsRepository(pool *pgxpool.Pool) portsrepo.StatisticsRepository {
	return &statisticsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatisticsRepository = (*statisticsRepository)(nil)

// AggregateGrouped groups the period's rows by category or IBAN, sorted by
// descending total amount.
func (r *statisticsRepository) AggregateGrouped(ctx context.Context, workspaceID string, period domain.Period, groupBy domain.StatisticsGroupBy) ([]domain.StatisticsRow, error) {
	column, ok := groupColumns[groupBy]
	if !ok {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unsupported groupBy value: %s", groupBy), apperrors.ErrValidation)
	}

	query := fmt.Sprintf(`
		SELECT %s AS key, COUNT(*) AS transactions_count, SUM(amount) AS total_amount
		FROM transactions
		WHERE workspace_id = $1 AND year = $2 AND month = $3
		GROUP BY %s
		ORDER BY SUM(amount) DESC;
	`, column, column)

	rows, err := r.Pool.Query(ctx, query, workspaceID, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("error querying grouped statistics: %w", err)
	}
	defer rows.Close()

	result := []domain.StatisticsRow{}
	for rows.Next() {
		var row domain.StatisticsRow
		if err := rows.Scan(&row.Key, &row.TransactionsCount, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning statistics row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics rows: %w", err)
	}

	return result, nil
}

// AggregateSummary computes one synthetic row covering the whole period.
func (r *statisticsRepository) AggregateSummary(ctx context.Context, workspaceID string, period domain.Period) ([]domain.StatisticsRow, error) {
	query := `
		SELECT COUNT(*) AS transactions_count, COALESCE(SUM(amount), 0) AS total_amount
		FROM transactions
		WHERE workspace_id = $1 AND year = $2 AND month = $3;
	`
	var count int64
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, workspaceID, period.Year, period.Month).Scan(&count, &total); err != nil {
		return nil, fmt.Errorf("error querying summary statistics: %w", err)
	}

	// An empty month aggregates to no rows, matching the grouped modes.
	if count == 0 {
		return []domain.StatisticsRow{}, nil
	}

	return []domain.StatisticsRow{{
		Key:               domain.SummaryKey,
		TransactionsCount: count,
		TotalAmount:       total,
	}}, nil
}
