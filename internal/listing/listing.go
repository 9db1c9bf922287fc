// Package listing derives the filtered, sorted card view and the
// aggregate totals shown above it.
package listing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billfold-dev/billfold/internal/model"
)

// Filter returns the cards matching a free-text query. Names, bank,
// card type and variant match case-insensitively; mobile and card
// numbers match on plain digit substrings. An empty query matches all.
func Filter(cards []model.Card, query string) []model.Card {
	term := strings.ToLower(query)
	var matched []model.Card
	for _, c := range cards {
		if matches(c, term) {
			matched = append(matched, c)
		}
	}
	return matched
}

func matches(c model.Card, term string) bool {
	return strings.Contains(strings.ToLower(c.CardholderName), term) ||
		strings.Contains(c.MobileNumber, term) ||
		strings.Contains(c.CardNumber, term) ||
		strings.Contains(strings.ToLower(c.BankName), term) ||
		strings.Contains(strings.ToLower(string(c.CardType)), term) ||
		(c.CardVariant != "" && strings.Contains(strings.ToLower(c.CardVariant), term))
}

// Sort orders cards in place: unpaid before partially paid before
// paid; within a non-paid status by ascending due date, within paid by
// cardholder name. Ties beyond that keep their original order.
func Sort(cards []model.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		statusI := cards[i].Status()
		statusJ := cards[j].Status()

		if pi, pj := statusI.Priority(), statusJ.Priority(); pi != pj {
			return pi < pj
		}

		if statusI != model.StatusPaid {
			return cards[i].DueDate.Before(cards[j].DueDate)
		}
		return strings.ToLower(cards[i].CardholderName) < strings.ToLower(cards[j].CardholderName)
	})
}

// Process filters by query and sorts the result.
func Process(cards []model.Card, query string) []model.Card {
	matched := Filter(cards, query)
	Sort(matched)
	return matched
}

// Summary aggregates bill totals across a card list.
type Summary struct {
	TotalBill   decimal.Decimal
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
}

// Summarize totals the bills and payments of all cards.
func Summarize(cards []model.Card) Summary {
	s := Summary{TotalBill: decimal.Zero, TotalPaid: decimal.Zero}
	for _, c := range cards {
		s.TotalBill = s.TotalBill.Add(c.BillAmount)
		s.TotalPaid = s.TotalPaid.Add(c.PaidAmount())
	}
	s.Outstanding = s.TotalBill.Sub(s.TotalPaid)
	return s
}
