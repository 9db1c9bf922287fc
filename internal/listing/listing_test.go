package listing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold-dev/billfold/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCard(id, name string, bill, paid string, due time.Time) model.Card {
	c := model.Card{
		ID:             id,
		CardholderName: name,
		BankName:       "State Bank",
		MobileNumber:   "9876543210",
		CardType:       model.CardTypeVisa,
		CardNumber:     "4111111111111111",
		CardLimit:      dec("50000"),
		BillAmount:     dec(bill),
		DueDate:        due,
	}
	if paid != "0" {
		c.Payments = []model.Payment{{ID: id + "-p", Amount: dec(paid), Date: due}}
	}
	return c
}

func TestSort_StatusThenDueDateThenName(t *testing.T) {
	a := testCard("A", "Ritu", "1000", "0", date(2024, time.May, 1))
	b := testCard("B", "Amit", "1000", "400", date(2024, time.April, 1))
	c := testCard("C", "Zed", "1000", "1000", date(2024, time.March, 1))
	d := testCard("D", "Ann", "1000", "1000", date(2024, time.June, 1))

	cards := []model.Card{c, a, d, b}
	Sort(cards)

	ids := []string{cards[0].ID, cards[1].ID, cards[2].ID, cards[3].ID}
	assert.Equal(t, []string{"A", "B", "D", "C"}, ids)
}

func TestSort_NonPaidByDueDate(t *testing.T) {
	late := testCard("late", "Ann", "1000", "0", date(2024, time.May, 20))
	early := testCard("early", "Zed", "1000", "0", date(2024, time.May, 2))

	cards := []model.Card{late, early}
	Sort(cards)

	assert.Equal(t, "early", cards[0].ID)
	assert.Equal(t, "late", cards[1].ID)
}

func TestSort_PaidByNameCaseInsensitive(t *testing.T) {
	z := testCard("z", "zed", "100", "100", date(2024, time.May, 1))
	a := testCard("a", "ANN", "100", "100", date(2024, time.May, 1))

	cards := []model.Card{z, a}
	Sort(cards)

	assert.Equal(t, "a", cards[0].ID)
}

func TestSort_StableForTies(t *testing.T) {
	first := testCard("first", "Same", "1000", "0", date(2024, time.May, 1))
	second := testCard("second", "Same", "1000", "0", date(2024, time.May, 1))

	cards := []model.Card{first, second}
	Sort(cards)

	assert.Equal(t, "first", cards[0].ID)
	assert.Equal(t, "second", cards[1].ID)
}

func TestFilter(t *testing.T) {
	ritu := testCard("1", "Ritu Sharma", "1000", "0", date(2024, time.May, 1))
	ritu.BankName = "HDFC"
	ritu.CardVariant = "Regalia"
	amit := testCard("2", "Amit Verma", "1000", "0", date(2024, time.May, 1))
	amit.MobileNumber = "9000000001"
	amit.CardType = model.CardTypeAmex

	cards := []model.Card{ritu, amit}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty matches all", "", []string{"1", "2"}},
		{"name case-insensitive", "ritu", []string{"1"}},
		{"bank", "hdfc", []string{"1"}},
		{"variant", "regalia", []string{"1"}},
		{"card type", "amex", []string{"2"}},
		{"mobile substring", "900000", []string{"2"}},
		{"card number substring", "41111111", []string{"1", "2"}},
		{"no match", "nothing-here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(cards, tt.query)
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestProcess_FiltersThenSorts(t *testing.T) {
	paid := testCard("paid", "Ritu", "100", "100", date(2024, time.May, 1))
	unpaid := testCard("unpaid", "Ritu", "100", "0", date(2024, time.May, 1))
	other := testCard("other", "Amit", "100", "0", date(2024, time.May, 1))

	got := Process([]model.Card{paid, unpaid, other}, "ritu")
	require.Len(t, got, 2)
	assert.Equal(t, "unpaid", got[0].ID)
	assert.Equal(t, "paid", got[1].ID)
}

func TestSummarize(t *testing.T) {
	a := testCard("a", "Ritu", "1000", "400", date(2024, time.May, 1))
	b := testCard("b", "Amit", "500", "500", date(2024, time.May, 1))

	s := Summarize([]model.Card{a, b})
	assert.True(t, s.TotalBill.Equal(dec("1500")))
	assert.True(t, s.TotalPaid.Equal(dec("900")))
	assert.True(t, s.Outstanding.Equal(dec("600")))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.TotalBill.IsZero())
	assert.True(t, s.Outstanding.IsZero())
}
