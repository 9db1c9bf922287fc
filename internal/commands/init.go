package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/config"
	"github.com/billfold-dev/billfold/internal/store"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new billfold profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir)
		},
	}

	return cmd
}

func runInit(out io.Writer, dir string) error {
	cfg := config.Default()

	// Create directory structure.
	dirs := []string{cfg.Data.Dir, cfg.Data.ExportDir, "logs"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write billfold.yaml.
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty card collection.
	blob := store.NewFileBlob(filepath.Join(dir, cfg.Data.Dir))
	if err := blob.Set(store.Key, []byte("[]")); err != nil {
		return fmt.Errorf("writing empty store: %w", err)
	}

	fmt.Fprintf(out, "Initialized billfold profile at %s\n", dir)
	return nil
}
