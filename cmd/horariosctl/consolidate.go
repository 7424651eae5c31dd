package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"horarios/models"
	"horarios/services/availability"
	"horarios/services/registration"
	"horarios/services/tables"
)

// ConsolidateOptions holds flags for the consolidate command.
type ConsolidateOptions struct {
	*RootOptions
	JSON bool
}

// NewConsolidateCommand creates the consolidate command.
func NewConsolidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConsolidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "consolidate <submission.json>",
		Short: "Print the free-hour intervals of a form submission",
		Long: `Reads a form submission ("-" for stdin) and prints the intervals that
would be written to the disponibilidad table, followed by a one line summary.
Nothing is stored.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := readSubmission(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			intervals := availability.Consolidate(sub.Record.ID, sub.Record.Name, sub.Record.Availability)
			return writeIntervals(cmd.OutOrStdout(), intervals, opts.JSON)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the intervals as JSON")

	return cmd
}

func readSubmission(stdin io.Reader, path string) (models.Submission, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("reading submission: %w", err)
	}
	return registration.ParseSubmission(raw)
}

func writeIntervals(w io.Writer, intervals []models.IntervalRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(intervals)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tables.Availability.Columns); err != nil {
		return err
	}
	for _, iv := range intervals {
		if err := cw.Write([]string{iv.ID, iv.Name, iv.Day, models.FormatHour(iv.StartHour), models.FormatHour(iv.EndHour)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "# %s\n", availability.FormatForCSV(intervals))
	return err
}
