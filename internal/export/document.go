package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/billfold-dev/billfold/internal/model"
)

var summaryColumns = []string{
	"Cardholder", "Bank", "Type", "Number", "Limit", "Bill Amt", "Paid", "Due Amt", "Due Date", "Status",
}

var paymentColumns = []string{"Payment Date", "Note", "Amount"}

const documentStyle = `table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; font-size: 12px; text-align: left; }
th { background: #2980b9; color: #fff; }
.payments { page-break-inside: avoid; margin-top: 24px; }
@media print { .payments { break-inside: avoid; } }`

// RenderDocument builds the printable report: a summary table followed
// by a payment-history table for every card that has payments.
func RenderDocument(cards []model.Card, currency string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("title").SetText("Credit Card Summary Report")
	style := head.CreateElement("style")
	style.SetText(documentStyle)

	body := html.CreateElement("body")
	body.CreateElement("h1").SetText("Credit Card Summary Report")

	summary := body.CreateElement("table")
	addRow(summary, "th", summaryColumns)
	for _, card := range cards {
		cardType := string(card.CardType)
		if card.CardVariant != "" {
			cardType += " (" + card.CardVariant + ")"
		}
		addRow(summary, "td", []string{
			card.CardholderName,
			card.BankName,
			cardType,
			card.MaskedNumber(),
			formatAmount(currency, card.CardLimit),
			formatAmount(currency, card.BillAmount),
			formatAmount(currency, card.PaidAmount()),
			formatAmount(currency, card.Remaining()),
			card.DueDate.Format(dateFormat),
			string(card.Status()),
		})
	}

	for _, card := range cards {
		if len(card.Payments) == 0 {
			continue
		}
		section := body.CreateElement("div")
		section.CreateAttr("class", "payments")
		section.CreateElement("h2").SetText(
			fmt.Sprintf("Payment History for %s (%s)", card.CardholderName, card.MaskedNumber()))

		table := section.CreateElement("table")
		addRow(table, "th", paymentColumns)
		for _, p := range card.Payments {
			note := p.Note
			if note == "" {
				note = "-"
			}
			addRow(table, "td", []string{
				p.Date.Format(dateFormat),
				note,
				formatAmount(currency, p.Amount),
			})
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("rendering report document: %w", err)
	}
	return out, nil
}

// ExportDocument writes card_report.html and returns its path.
func ExportDocument(dir string, cards []model.Card, currency string) (string, error) {
	data, err := RenderDocument(cards, currency)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, "card_report.html")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report document: %w", err)
	}
	return path, nil
}

func addRow(table *etree.Element, cellTag string, values []string) {
	tr := table.CreateElement("tr")
	for _, v := range values {
		tr.CreateElement(cellTag).SetText(v)
	}
}

func formatAmount(currency string, d decimal.Decimal) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return currency + " " + d.StringFixed(2)
}
