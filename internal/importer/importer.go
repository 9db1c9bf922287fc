// Package importer validates spreadsheet rows into card candidates.
// Rows are checked independently so one bad row never hides problems
// in the rest, but the batch only commits when every row is clean.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/billfold-dev/billfold/internal/model"
)

// RowError is one failed field check, addressed by 1-based data row.
type RowError struct {
	Row     int
	Field   string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// Result is the outcome of a validation pass over a whole batch.
type Result struct {
	Cards  []model.Card
	Errors []RowError
}

// OK reports whether every row validated.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// maxShownErrors caps the error summary for display.
const maxShownErrors = 5

// ErrorSummary renders the first few row errors plus a count of the
// remainder.
func (r Result) ErrorSummary() string {
	if r.OK() {
		return ""
	}
	shown := r.Errors
	if len(shown) > maxShownErrors {
		shown = shown[:maxShownErrors]
	}
	lines := make([]string, len(shown))
	for i, e := range shown {
		lines[i] = e.Error()
	}
	summary := strings.Join(lines, "\n")
	if rest := len(r.Errors) - maxShownErrors; rest > 0 {
		summary += fmt.Sprintf("\n...and %d more errors.", rest)
	}
	return summary
}

// dateLayouts are the accepted spreadsheet date formats.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// ValidateRows checks every row against the card field schema and
// builds candidate cards (no ID, no payments) for the clean ones. A
// failing row contributes its field errors and no candidate; later
// rows are still processed.
func ValidateRows(rows []Row) Result {
	v := newValidator()
	var result Result

	for i, row := range rows {
		rowNum := i + 1
		card, errs := validateRow(v, row)
		if len(errs) > 0 {
			for _, fieldErr := range errs {
				fieldErr.Row = rowNum
				result.Errors = append(result.Errors, fieldErr)
			}
			continue
		}
		result.Cards = append(result.Cards, card)
	}
	return result
}

func validateRow(v *validator.Validate, row Row) (model.Card, []RowError) {
	var errs []RowError

	if err := v.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, RowError{Field: fe.Field(), Message: messageFor(fe)})
			}
		} else {
			errs = append(errs, RowError{Field: "row", Message: err.Error()})
		}
	}

	cardLimit, limitErr := decimal.NewFromString(row.CardLimit)
	if limitErr == nil && cardLimit.IsNegative() {
		errs = append(errs, RowError{Field: "cardLimit", Message: "card limit cannot be negative"})
	}

	billAmount, amountErr := decimal.NewFromString(row.BillAmount)
	if amountErr == nil && billAmount.IsNegative() {
		errs = append(errs, RowError{Field: "billAmount", Message: "bill amount cannot be negative"})
	}
	if limitErr == nil && amountErr == nil && cardLimit.LessThan(billAmount) {
		errs = append(errs, RowError{Field: "cardLimit", Message: "card limit cannot be less than the bill amount"})
	}

	billDate, billErr := parseDate(row.BillDate)
	if row.BillDate != "" && billErr != nil {
		errs = append(errs, RowError{Field: "billDate", Message: "invalid date format"})
	}
	dueDate, dueErr := parseDate(row.DueDate)
	if row.DueDate != "" && dueErr != nil {
		errs = append(errs, RowError{Field: "dueDate", Message: "invalid date format"})
	}

	var birthDate *time.Time
	if row.BirthDate != "" {
		parsed, err := parseDate(row.BirthDate)
		if err != nil {
			errs = append(errs, RowError{Field: "birthDate", Message: "invalid date format"})
		} else {
			birthDate = &parsed
		}
	}

	if len(errs) > 0 {
		return model.Card{}, errs
	}

	return model.Card{
		CardholderName:    row.CardholderName,
		BankName:          row.BankName,
		MobileNumber:      row.MobileNumber,
		CardType:          model.CardType(row.CardType),
		CardVariant:       row.CardVariant,
		CardNumber:        row.CardNumber,
		ExpiryDate:        row.ExpiryDate,
		CVV:               row.CVV,
		CardLimit:         cardLimit,
		BillAmount:        billAmount,
		BillDate:          billDate,
		DueDate:           dueDate,
		BirthDate:         birthDate,
		CardPIN:           row.CardPIN,
		AppPIN:            row.AppPIN,
		IFSCCode:          row.IFSCCode,
		StatementPassword: row.StatementPassword,
	}, nil
}

// parseDate normalizes a spreadsheet date to a midnight UTC timestamp.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
