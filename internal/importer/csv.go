package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadRows reads a header-mapped CSV into rows. Column names must
// match the card field names; unknown columns are ignored and missing
// optional columns leave their fields empty.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}

	get := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			CardholderName:    get(record, "cardholderName"),
			BankName:          get(record, "bankName"),
			MobileNumber:      get(record, "mobileNumber"),
			CardType:          get(record, "cardType"),
			CardVariant:       get(record, "cardVariant"),
			CardNumber:        get(record, "cardNumber"),
			ExpiryDate:        get(record, "expiryDate"),
			CVV:               get(record, "cvv"),
			CardLimit:         get(record, "cardLimit"),
			BillAmount:        get(record, "billAmount"),
			BillDate:          get(record, "billDate"),
			DueDate:           get(record, "dueDate"),
			BirthDate:         get(record, "birthDate"),
			CardPIN:           get(record, "cardPin"),
			AppPIN:            get(record, "appPin"),
			IFSCCode:          get(record, "ifscCode"),
			StatementPassword: get(record, "statementPassword"),
		})
	}
	return rows, nil
}
