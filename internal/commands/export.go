package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/export"
	"github.com/billfold-dev/billfold/internal/listing"
)

func newExportCommand() *cobra.Command {
	var profile, query, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the card list as a spreadsheet or printable report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), profile, query, format)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	cmd.Flags().StringVar(&query, "query", "", "filter by name, bank, type, variant or number")
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or html")

	return cmd
}

func runExport(out io.Writer, profile, query, format string) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	cards := listing.Process(a.store.All(), query)
	dir := filepath.Join(a.root, a.cfg.Data.ExportDir)

	switch format {
	case "csv":
		paths, err := export.ExportCSV(dir, cards)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "Wrote %s\n", p)
		}
	case "html":
		path, err := export.ExportDocument(dir, cards, a.cfg.Display.Currency)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	default:
		return fmt.Errorf("unknown format %q, expected csv or html", format)
	}
	return nil
}
