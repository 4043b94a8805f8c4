// Package csvparse turns a monthly CSV bank statement into per-row parse
// outcomes. Row-level problems become rejection messages and never abort the
// batch; only an unreadable stream or a bad header fails the whole file.
package csvparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// FieldIBAN etc. are the required, case-sensitive header names.
	FieldIBAN     = "iban"
	FieldDate     = "date"
	FieldCurrency = "currency"
	FieldCategory = "category"
	FieldAmount   = "amount"

	dateLayout        = "2006-01-02"
	maxCategoryLength = 100
)

var (
	ibanPattern     = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{10,30}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	requiredFields = []string{FieldIBAN, FieldDate, FieldCurrency, FieldCategory, FieldAmount}
)

// ParseResultRow is the outcome for one data row: either a validated
// transaction or a rejection message carrying the 1-based line number
// (the header is line 1).
type ParseResultRow struct {
	Record *domain.Transaction
	Error  string
}

// IsValid reports whether the row produced a transaction.
func (r ParseResultRow) IsValid() bool {
	return r.Error == ""
}

// Parse reads the whole CSV stream and returns one outcome per data row, in
// input order. The result is purely a function of the input bytes and the
// expected period. A missing required header or an unreadable stream returns
// a batch-level error wrapping apperrors.ErrValidation.
func Parse(workspaceID string, r io.Reader, expected domain.Period) ([]ParseResultRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "Missing or wrong header: "+FieldIBAN, apperrors.ErrValidation)
		}
		return nil, apperrors.NewAppError(http.StatusBadRequest, "unreadable CSV input", err)
	}

	header, err := validateHeader(headerRecord)
	if err != nil {
		return nil, err
	}

	results := []ParseResultRow{}

	lineNumber := 2 // header is line 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Broken quoting etc. is a row problem, not a batch abort.
				results = append(results, ParseResultRow{Error: fmt.Sprintf("Line %d: invalid record format", lineNumber)})
				lineNumber++
				continue
			}
			// A failing underlying stream repeats on every read; abort the
			// batch instead of rejecting rows forever.
			return nil, apperrors.NewAppError(http.StatusBadRequest, "unreadable CSV input", err)
		}
		results = append(results, parseRow(workspaceID, header, record, expected, lineNumber))
		lineNumber++
	}

	return results, nil
}

// validateHeader checks that all required columns are present (case-sensitive)
// and returns the name -> column index mapping.
func validateHeader(record []string) (map[string]int, error) {
	header := make(map[string]int, len(record))
	for i, name := range record {
		header[strings.TrimSpace(name)] = i
	}
	for _, field := range requiredFields {
		if _, ok := header[field]; !ok {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "Missing or wrong header: "+field, apperrors.ErrValidation)
		}
	}
	return header, nil
}

func parseRow(workspaceID string, header map[string]int, record []string, expected domain.Period, lineNumber int) (result ParseResultRow) {
	defer func() {
		if recover() != nil {
			result = ParseResultRow{Error: fmt.Sprintf("Line %d: invalid record format", lineNumber)}
		}
	}()

	iban, err := requiredField(record, header, FieldIBAN, lineNumber)
	if err != nil {
		return ParseResultRow{Error: err.Error()}
	}
	iban = strings.ToUpper(iban)

	dateString, err := requiredField(record, header, FieldDate, lineNumber)
	if err != nil {
		return ParseResultRow{Error: err.Error()}
	}
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return ParseResultRow{Error: fmt.Sprintf("Line %d Invalid date format: %s (expected YYYY-MM-DD)", lineNumber, dateString)}
	}

	currency, err := requiredField(record, header, FieldCurrency, lineNumber)
	if err != nil {
		return ParseResultRow{Error: err.Error()}
	}
	currency = strings.ToUpper(currency)

	category, err := requiredField(record, header, FieldCategory, lineNumber)
	if err != nil {
		return ParseResultRow{Error: err.Error()}
	}

	amountString, err := requiredField(record, header, FieldAmount, lineNumber)
	if err != nil {
		return ParseResultRow{Error: err.Error()}
	}
	amount, err := decimal.NewFromString(amountString)
	if err != nil {
		return ParseResultRow{Error: fmt.Sprintf("Line %d Invalid amount format: %s (expected decimal number)", lineNumber, amountString)}
	}

	if !ibanPattern.MatchString(iban) {
		return ParseResultRow{Error: fmt.Sprintf("Line %d: invalid IBAN format", lineNumber)}
	}
	if !expected.Contains(date) {
		return ParseResultRow{Error: fmt.Sprintf("Line %d: date not in expected month: %s", lineNumber, expected)}
	}
	if !currencyPattern.MatchString(currency) {
		return ParseResultRow{Error: fmt.Sprintf("Line %d: invalid currency (expected ISO-4217, e.g. PLN)", lineNumber)}
	}
	if category == "" || utf8.RuneCountInString(category) > maxCategoryLength {
		return ParseResultRow{Error: fmt.Sprintf("Line %d: invalid category (must be non-empty and <= 100 characters)", lineNumber)}
	}
	if amount.IsZero() {
		return ParseResultRow{Error: fmt.Sprintf("Line %d: amount must be non-zero", lineNumber)}
	}

	return ParseResultRow{Record: &domain.Transaction{
		TransactionID: uuid.NewString(),
		WorkspaceID:   workspaceID,
		Period:        expected,
		IBAN:          iban,
		Date:          date,
		Currency:      currency,
		Category:      category,
		Amount:        amount,
	}}
}

// requiredField fetches a trimmed column value, rejecting the row when the
// column is absent from this record or blank.
func requiredField(record []string, header map[string]int, field string, lineNumber int) (string, error) {
	idx, ok := header[field]
	if !ok || idx >= len(record) {
		return "", fmt.Errorf("Line %d: missing or empty field: %s", lineNumber, field)
	}
	value := strings.TrimSpace(record[idx])
	if value == "" {
		return "", fmt.Errorf("Line %d: missing or empty field: %s", lineNumber, field)
	}
	return value, nil
}
