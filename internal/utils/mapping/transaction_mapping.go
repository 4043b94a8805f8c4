package mapping

import (
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/leftsolutions/transactions_processor/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		WorkspaceID:   d.WorkspaceID,
		Year:          d.Period.Year,
		Month:         d.Period.Month,
		IBAN:          d.IBAN,
		Date:          d.Date,
		Currency:      d.Currency,
		Category:      d.Category,
		Amount:        d.Amount,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		WorkspaceID:   m.WorkspaceID,
		Period:        domain.Period{Year: m.Year, Month: m.Month},
		IBAN:          m.IBAN,
		Date:          m.Date,
		Currency:      m.Currency,
		Category:      m.Category,
		Amount:        m.Amount,
	}
}
