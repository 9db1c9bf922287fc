// Package cycle rolls fully paid cards forward to their next billing cycle.
package cycle

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billfold-dev/billfold/internal/model"
)

// AddMonths adds n calendar months, clamping the day to the last day of
// the target month (Jan 31 + 1 month = Feb 28/29, never Mar 2).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Midnight truncates t to the start of its day.
func Midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Advance rolls a paid card whose bill date has arrived to its next
// unbilled cycle. Bill and due dates move forward one month at a time
// until the bill date passes today; payments and the bill amount reset
// for the new cycle. Returns the updated card, the number of cycles
// advanced, and whether anything changed.
func Advance(card model.Card, today time.Time) (model.Card, int, bool) {
	if card.Status() != model.StatusPaid {
		return card, 0, false
	}

	today = Midnight(today)
	bill := Midnight(card.BillDate)
	if today.Before(bill) {
		return card, 0, false
	}

	due := card.DueDate
	cycles := 0
	for !bill.After(today) {
		bill = AddMonths(bill, 1)
		due = AddMonths(due, 1)
		cycles++
	}

	card.BillDate = bill
	card.DueDate = due
	card.Payments = []model.Payment{}
	card.BillAmount = decimal.Zero
	return card, cycles, true
}

// DueReminders returns the cards that are not fully paid and whose due
// date is today or earlier.
func DueReminders(cards []model.Card, today time.Time) []model.Card {
	today = Midnight(today)
	var due []model.Card
	for _, c := range cards {
		if c.Status() == model.StatusPaid {
			continue
		}
		if !Midnight(c.DueDate).After(today) {
			due = append(due, c)
		}
	}
	return due
}
