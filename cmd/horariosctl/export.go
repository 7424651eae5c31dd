package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"horarios/services/tables"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Write the derived tables to an .xlsx workbook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			store, err := opts.openStore(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			buf, err := tables.ExportWorkbook(cmd.Context(), store, tables.All)
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", opts.Output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "profesores.xlsx", "output file path")

	return cmd
}
