package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/listing"
	"github.com/billfold-dev/billfold/internal/model"
)

func newSummaryCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show aggregate bill totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.OutOrStdout(), profile, time.Now())
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")

	return cmd
}

func runSummary(out io.Writer, profile string, today time.Time) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	if err := a.rollover(out, today); err != nil {
		return err
	}
	a.reminders(out, today)

	cards := a.store.All()
	s := listing.Summarize(cards)
	currency := a.cfg.Display.Currency

	counts := map[model.CardStatus]int{}
	for _, c := range cards {
		counts[c.Status()]++
	}

	fmt.Fprintf(out, "Cards:       %d (%d unpaid, %d partially paid, %d paid)\n",
		len(cards), counts[model.StatusUnpaid], counts[model.StatusPartiallyPaid], counts[model.StatusPaid])
	fmt.Fprintf(out, "Total bill:  %s %s\n", currency, s.TotalBill.StringFixed(2))
	fmt.Fprintf(out, "Total paid:  %s %s\n", currency, s.TotalPaid.StringFixed(2))
	fmt.Fprintf(out, "Outstanding: %s %s\n", currency, s.Outstanding.StringFixed(2))
	return nil
}
