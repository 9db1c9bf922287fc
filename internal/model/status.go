package model

import "github.com/shopspring/decimal"

// CardStatus classifies a card's current billing cycle.
type CardStatus string

const (
	StatusUnpaid        CardStatus = "unpaid"
	StatusPartiallyPaid CardStatus = "partially-paid"
	StatusPaid          CardStatus = "paid"
)

// Priority orders statuses for display: unpaid first, paid last.
func (s CardStatus) Priority() int {
	switch s {
	case StatusUnpaid:
		return 1
	case StatusPartiallyPaid:
		return 2
	case StatusPaid:
		return 3
	default:
		return 4
	}
}

// PaidAmount returns the sum of all payments against the current bill.
func (c Card) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Remaining returns the unpaid portion of the current bill.
func (c Card) Remaining() decimal.Decimal {
	return c.BillAmount.Sub(c.PaidAmount())
}

// AvailableLimit returns the card limit minus the remaining bill.
func (c Card) AvailableLimit() decimal.Decimal {
	return c.CardLimit.Sub(c.Remaining())
}

// Status classifies the card. A card with a zero bill amount is always
// unpaid, no matter what payments it carries.
func (c Card) Status() CardStatus {
	paid := c.PaidAmount()
	if c.BillAmount.IsPositive() && paid.GreaterThanOrEqual(c.BillAmount) {
		return StatusPaid
	}
	if paid.IsPositive() && paid.LessThan(c.BillAmount) {
		return StatusPartiallyPaid
	}
	return StatusUnpaid
}
