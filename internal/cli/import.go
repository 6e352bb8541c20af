package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

func newImportCommand(e *env) *cobra.Command {
	var file, handle string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Loads a snapshot file into the configured store",
		Long: `Reads a JSON array of {"step", "data"} captures and appends every entry, in
order, to the log of the given handle. The handle defaults to the file's base name.`,
		Args: cobra.NoArgs,
		RunE: e.withService(func(cmd *cobra.Command, args []string) error {
			if handle == "" {
				handle = filepath.Base(file)
			}
			n, err := importSnapshot(cmd, e, file, handle)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s\n", n, handle)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file to import")
	cmd.Flags().StringVar(&handle, "handle", "", "snapshot handle to write (default: base name of --file)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func importSnapshot(cmd *cobra.Command, e *env, file, handle string) (int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	snap, err := domain.DecodeSnapshot(data)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", file, err)
	}

	for i, entry := range snap {
		if err := e.svc.Store.Append(cmd.Context(), handle, entry); err != nil {
			return i, fmt.Errorf("import %s: entry %d (%s): %w", file, i, entry.Step, err)
		}
	}
	e.log.Info("snapshot imported", zap.String("handle", handle), zap.Int("entries", len(snap)))
	return len(snap), nil
}
