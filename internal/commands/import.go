package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/auditlog"
	"github.com/billfold-dev/billfold/internal/importer"
)

func newImportCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import cards from a CSV file",
		Long: "Import cards from a CSV file. The header row must use the card field\n" +
			"names (cardholderName, bankName, mobileNumber, cardType, cardNumber,\n" +
			"expiryDate, cvv, cardLimit, billAmount, billDate, dueDate); all other\n" +
			"columns are optional. The batch commits only if every row is valid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.OutOrStdout(), profile, args[0])
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")

	return cmd
}

func runImport(out io.Writer, profile, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	rows, err := importer.ReadRows(f)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no card data found in %s", path)
	}

	result := importer.ValidateRows(rows)
	if !result.OK() {
		return fmt.Errorf("import failed, fix the following and retry:\n%s", result.ErrorSummary())
	}

	a, err := openApp(profile)
	if err != nil {
		return err
	}

	added, err := a.store.BulkAdd(result.Cards)
	if err != nil {
		return err
	}
	a.audit(auditlog.ActionImport, "", fmt.Sprintf("imported %d card(s) from %s", len(added), path))

	fmt.Fprintf(out, "%d card(s) imported successfully.\n", len(added))
	return nil
}
