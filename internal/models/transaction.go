package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database shape of one imported transaction row.
// Year and Month are denormalized from the transaction date so that
// delete-by-period and the statistics aggregation hit one composite index.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	WorkspaceID   string          `json:"workspaceID"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	IBAN          string          `json:"iban"`
	Date          time.Time       `json:"date"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}
