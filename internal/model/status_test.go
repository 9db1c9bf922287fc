package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func cardWithPayments(bill string, amounts ...string) Card {
	c := Card{
		BillAmount: dec(bill),
		CardLimit:  dec("100000"),
	}
	for _, a := range amounts {
		c.Payments = append(c.Payments, Payment{
			ID:     "p-" + a,
			Amount: dec(a),
			Date:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return c
}

func TestStatus_Classification(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected CardStatus
	}{
		{"no bill no payments", cardWithPayments("0"), StatusUnpaid},
		{"bill no payments", cardWithPayments("500"), StatusUnpaid},
		{"partial payment", cardWithPayments("500", "200"), StatusPartiallyPaid},
		{"several partial payments", cardWithPayments("500", "200", "100"), StatusPartiallyPaid},
		{"exactly paid", cardWithPayments("500", "300", "200"), StatusPaid},
		{"overpaid", cardWithPayments("500", "600"), StatusPaid},
		{"zero bill with payments stays unpaid", cardWithPayments("0", "100"), StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.card.Status())
		})
	}
}

func TestPaidAmount_SumsAllPayments(t *testing.T) {
	c := cardWithPayments("1000", "250.50", "100.25")
	assert.True(t, c.PaidAmount().Equal(dec("350.75")))
}

func TestRemaining_And_AvailableLimit(t *testing.T) {
	c := cardWithPayments("1000", "400")
	c.CardLimit = dec("5000")

	assert.True(t, c.Remaining().Equal(dec("600")))
	assert.True(t, c.AvailableLimit().Equal(dec("4400")))
}

func TestEngine_Pure(t *testing.T) {
	c := cardWithPayments("1000", "400")

	first := c.Remaining()
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(c.Remaining()))
		assert.Equal(t, StatusPartiallyPaid, c.Status())
	}
	// Inputs untouched.
	assert.Len(t, c.Payments, 1)
	assert.True(t, c.BillAmount.Equal(dec("1000")))
}

func TestStatusPriority(t *testing.T) {
	assert.Equal(t, 1, StatusUnpaid.Priority())
	assert.Equal(t, 2, StatusPartiallyPaid.Priority())
	assert.Equal(t, 3, StatusPaid.Priority())
	assert.Equal(t, 4, CardStatus("bogus").Priority())
}

func TestMaskedNumber(t *testing.T) {
	c := Card{CardNumber: "4111111111111111"}
	assert.Equal(t, "...1111", c.MaskedNumber())
}
