// Package export projects the filtered card list into byte artifacts:
// a spreadsheet-friendly CSV and a printable report document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/billfold-dev/billfold/internal/model"
)

// SummaryHeader is the column order of the summary sheet.
const SummaryHeader = "cardholderName,bankName,mobileNumber,cardType,cardVariant,cardNumber,expiryDate,cvv," +
	"cardLimit,availableLimit,billAmount,paidAmount,dueAmount,billDate,dueDate,status," +
	"ifscCode,statementPassword,cardPin,appPin,birthDate"

const dateFormat = "2006-01-02"

// PaymentsHeader is the column order of a per-card payment sheet.
const PaymentsHeader = "date,amount,note"

// WriteSummary writes one summary row per card, derived balances
// included.
func WriteSummary(w io.Writer, cards []model.Card) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(SummaryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, card := range cards {
		if err := cw.Write(summaryRow(card)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func summaryRow(card model.Card) []string {
	birth := ""
	if card.BirthDate != nil {
		birth = card.BirthDate.Format(dateFormat)
	}
	return []string{
		card.CardholderName,
		card.BankName,
		card.MobileNumber,
		string(card.CardType),
		card.CardVariant,
		// Leading apostrophe keeps spreadsheet apps from mangling the
		// 16-digit number into scientific notation.
		"'" + card.CardNumber,
		card.ExpiryDate,
		card.CVV,
		card.CardLimit.StringFixed(2),
		card.AvailableLimit().StringFixed(2),
		card.BillAmount.StringFixed(2),
		card.PaidAmount().StringFixed(2),
		card.Remaining().StringFixed(2),
		card.BillDate.Format(dateFormat),
		card.DueDate.Format(dateFormat),
		string(card.Status()),
		card.IFSCCode,
		card.StatementPassword,
		card.CardPIN,
		card.AppPIN,
		birth,
	}
}

// WritePayments writes a card's payment history table.
func WritePayments(w io.Writer, card model.Card) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(PaymentsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range card.Payments {
		row := []string{p.Date.Format(dateFormat), p.Amount.StringFixed(2), p.Note}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// SheetName returns the per-card artifact name: first 15 characters of
// the holder plus the last four digits, unsafe characters stripped.
func SheetName(card model.Card) string {
	name := card.CardholderName
	if len(name) > 15 {
		name = name[:15]
	}
	last4 := card.CardNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	s := name + "_" + last4
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '?', '*', '[', ']', ' ':
			return '_'
		}
		return r
	}, s)
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}

// ExportCSV writes card_report.csv plus one payments CSV per card that
// has payments. Returns the written paths.
func ExportCSV(dir string, cards []model.Card) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	summaryPath := filepath.Join(dir, "card_report.csv")
	f, err := os.Create(summaryPath)
	if err != nil {
		return nil, fmt.Errorf("creating summary: %w", err)
	}
	if err := WriteSummary(f, cards); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing summary: %w", err)
	}

	paths := []string{summaryPath}
	for _, card := range cards {
		if len(card.Payments) == 0 {
			continue
		}
		path := filepath.Join(dir, "payments_"+SheetName(card)+".csv")
		pf, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating payment sheet: %w", err)
		}
		if err := WritePayments(pf, card); err != nil {
			pf.Close()
			return nil, err
		}
		if err := pf.Close(); err != nil {
			return nil, fmt.Errorf("closing payment sheet: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
