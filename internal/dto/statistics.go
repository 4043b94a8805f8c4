package dto

import (
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatisticsQueryRequest binds the monthly statistics query string.
// GroupBy defaults to SUMMARY when omitted.
type StatisticsQueryRequest struct {
	Month   string `form:"month" binding:"required"`
	GroupBy string `form:"groupBy" binding:"omitempty,oneof=CATEGORY IBAN SUMMARY"`
}

// MonthlyStatisticsRowResponse is one aggregated group in the API response.
type MonthlyStatisticsRowResponse struct {
	Key               string          `json:"key"`
	TransactionsCount int64           `json:"transactionsCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

// MonthlyStatisticsResponse is the monthly statistics API payload.
type MonthlyStatisticsResponse struct {
	WorkspaceID string                         `json:"workspaceId"`
	Month       string                         `json:"month"`
	GroupedBy   string                         `json:"groupedBy"`
	Rows        []MonthlyStatisticsRowResponse `json:"rows"`
}

// ToMonthlyStatisticsResponse converts aggregation rows to the API shape.
func ToMonthlyStatisticsResponse(workspaceID string, query domain.StatisticsQuery, rows []domain.StatisticsRow) MonthlyStatisticsResponse {
	respRows := make([]MonthlyStatisticsRowResponse, 0, len(rows))
	for _, row := range rows {
		respRows = append(respRows, MonthlyStatisticsRowResponse{
			Key:               row.Key,
			TransactionsCount: row.TransactionsCount,
			TotalAmount:       row.TotalAmount,
		})
	}
	return MonthlyStatisticsResponse{
		WorkspaceID: workspaceID,
		Month:       query.Period.String(),
		GroupedBy:   string(query.GroupBy),
		Rows:        respRows,
	}
}
