package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one validated financial transaction row belonging to exactly
// one (WorkspaceID, Period). The set of transactions for a period is wholly
// owned by the most recent successful import: a re-import replaces, never
// merges.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	WorkspaceID   string          `json:"workspaceID"`   // Isolation boundary, opaque to the core
	Period        Period          `json:"period"`        // Year+month the batch was imported under
	IBAN          string          `json:"iban"`          // Normalized upper-case account identifier
	Date          time.Time       `json:"date"`          // Transaction date, always within Period
	Currency      string          `json:"currency"`      // ISO-4217 3-letter code, upper-case
	Category      string          `json:"category"`      // Non-empty, trimmed, <= 100 chars
	Amount        decimal.Decimal `json:"amount"`        // Signed, never zero; precise decimal
}
