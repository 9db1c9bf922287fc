package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/listing"
)

func newListCommand() *cobra.Command {
	var profile, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), profile, query, time.Now())
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	cmd.Flags().StringVar(&query, "query", "", "filter by name, bank, type, variant or number")

	return cmd
}

func runList(out io.Writer, profile, query string, today time.Time) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	if err := a.rollover(out, today); err != nil {
		return err
	}
	a.reminders(out, today)

	cards := listing.Process(a.store.All(), query)
	if len(cards) == 0 {
		if query != "" {
			fmt.Fprintln(out, "No cards match your search.")
		} else {
			fmt.Fprintln(out, "No cards yet. Run \"billfold add\" to get started.")
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCARDHOLDER\tBANK\tTYPE\tNUMBER\tBILL\tPAID\tDUE\tDUE DATE\tSTATUS")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.CardholderName,
			c.BankName,
			c.CardType,
			c.MaskedNumber(),
			c.BillAmount.StringFixed(2),
			c.PaidAmount().StringFixed(2),
			c.Remaining().StringFixed(2),
			c.DueDate.Format("2006-01-02"),
			c.Status(),
		)
	}
	return tw.Flush()
}
