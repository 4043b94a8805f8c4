package domain

import "github.com/shopspring/decimal"

// StatisticsGroupBy selects the grouping dimension of a monthly statistics query.
type StatisticsGroupBy string

const (
	GroupByCategory StatisticsGroupBy = "CATEGORY"
	GroupByIBAN     StatisticsGroupBy = "IBAN"
	GroupBySummary  StatisticsGroupBy = "SUMMARY"
)

// SummaryKey is the synthetic group key used for the SUMMARY mode.
const SummaryKey = "SUMMARY"

// StatisticsQuery carries the target month and grouping mode of a
// monthly statistics request.
type StatisticsQuery struct {
	Period  Period
	GroupBy StatisticsGroupBy
}

// StatisticsRow is one aggregated group: its key (category, IBAN, or the
// SUMMARY marker), the number of transactions in the group and the sum of
// their amounts.
type StatisticsRow struct {
	Key               string          `json:"key"`
	TransactionsCount int64           `json:"transactionsCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}
