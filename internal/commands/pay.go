package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/auditlog"
	"github.com/billfold-dev/billfold/internal/id"
	"github.com/billfold-dev/billfold/internal/model"
)

// minPayment is the smallest accepted payment amount.
var minPayment = decimal.RequireFromString("0.01")

func newPayCommand() *cobra.Command {
	payCmd := &cobra.Command{
		Use:   "pay",
		Short: "Record and manage payments",
	}
	payCmd.AddCommand(newPayAddCommand())
	payCmd.AddCommand(newPayEditCommand())
	payCmd.AddCommand(newPayRemoveCommand())
	return payCmd
}

func newPayAddCommand() *cobra.Command {
	var profile, amount, note, date string
	var full bool

	cmd := &cobra.Command{
		Use:   "add <card-id>",
		Short: "Record a payment against a card's current bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayAdd(cmd.OutOrStdout(), profile, args[0], amount, note, date, full)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount")
	cmd.Flags().StringVar(&note, "note", "", "payment note")
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD), defaults to today")
	cmd.Flags().BoolVar(&full, "full", false, "pay the full remaining balance")

	return cmd
}

func runPayAdd(out io.Writer, profile, cardID, amountStr, note, dateStr string, full bool) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	card, ok := a.store.Get(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}

	remaining := card.Remaining()

	var amount decimal.Decimal
	if full {
		if !remaining.IsPositive() {
			return fmt.Errorf("nothing remaining on this bill")
		}
		amount = remaining
		if note == "" {
			note = "Full payment"
		}
	} else {
		if note == "" {
			return fmt.Errorf("a note is required for the payment")
		}
		amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q", amountStr)
		}
		if amount.LessThan(minPayment) {
			return fmt.Errorf("amount must be at least 0.01")
		}
		if amount.GreaterThan(remaining) {
			return fmt.Errorf("payment cannot exceed remaining balance of %s", remaining.StringFixed(2))
		}
	}

	date := time.Now().UTC()
	if dateStr != "" {
		date, err = parseFlagDate(dateStr)
		if err != nil {
			return err
		}
	}

	payment := model.Payment{
		ID:     id.New(),
		Amount: amount,
		Date:   date,
		Note:   note,
	}
	card.Payments = append(card.Payments, payment)

	if err := a.store.Update(card); err != nil {
		return err
	}
	a.audit(auditlog.ActionAddPayment, card.ID, "payment of "+amount.StringFixed(2))

	fmt.Fprintf(out, "Recorded payment of %s on %s (%s)\n", amount.StringFixed(2), card.MaskedNumber(), payment.ID)
	if card.Status() == model.StatusPaid {
		fmt.Fprintln(out, "Bill fully paid.")
	}
	return nil
}

func newPayEditCommand() *cobra.Command {
	var profile, amount, note, date string

	cmd := &cobra.Command{
		Use:   "edit <card-id> <payment-id>",
		Short: "Edit a recorded payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayEdit(cmd, profile, args[0], args[1], amount, note, date)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount")
	cmd.Flags().StringVar(&note, "note", "", "payment note")
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD)")

	return cmd
}

func runPayEdit(cmd *cobra.Command, profile, cardID, paymentID, amountStr, note, dateStr string) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	card, ok := a.store.Get(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}

	idx := -1
	for i, p := range card.Payments {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown payment %s", paymentID)
	}

	payment := card.Payments[idx]
	if cmd.Flags().Changed("amount") {
		payment.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q", amountStr)
		}
		if payment.Amount.LessThan(minPayment) {
			return fmt.Errorf("amount must be at least 0.01")
		}
	}
	if cmd.Flags().Changed("note") {
		payment.Note = note
	}
	if cmd.Flags().Changed("date") {
		payment.Date, err = parseFlagDate(dateStr)
		if err != nil {
			return err
		}
	}

	// Total across all payments may not exceed the bill.
	totalWithout := decimal.Zero
	for i, p := range card.Payments {
		if i != idx {
			totalWithout = totalWithout.Add(p.Amount)
		}
	}
	if totalWithout.Add(payment.Amount).GreaterThan(card.BillAmount) {
		return fmt.Errorf("total payments cannot exceed bill amount of %s", card.BillAmount.StringFixed(2))
	}

	card.Payments[idx] = payment
	if err := a.store.Update(card); err != nil {
		return err
	}
	a.audit(auditlog.ActionEditPayment, card.ID, "payment "+paymentID+" now "+payment.Amount.StringFixed(2))

	fmt.Fprintf(cmd.OutOrStdout(), "Updated payment %s\n", paymentID)
	return nil
}

func newPayRemoveCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "remove <card-id> <payment-id>",
		Short: "Remove a recorded payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayRemove(cmd.OutOrStdout(), profile, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")

	return cmd
}

func runPayRemove(out io.Writer, profile, cardID, paymentID string) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	card, ok := a.store.Get(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}

	kept := card.Payments[:0:0]
	found := false
	for _, p := range card.Payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("unknown payment %s", paymentID)
	}

	card.Payments = kept
	if err := a.store.Update(card); err != nil {
		return err
	}
	a.audit(auditlog.ActionRemovePayment, card.ID, "removed payment "+paymentID)

	fmt.Fprintf(out, "Removed payment %s\n", paymentID)
	return nil
}

// parseFlagDate parses a YYYY-MM-DD command flag.
func parseFlagDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}
