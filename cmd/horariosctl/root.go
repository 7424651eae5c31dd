package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"horarios/services/tables"
	"horarios/utils"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	DataDir       string
	Backend       string
	DBPath        string
	CorruptPolicy string
}

// NewRootCommand creates the root command for horariosctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "horariosctl",
		Short: "Teacher availability tables",
		Long:  "Consolidates availability grids and maintains the derived maestros, materias_interes and disponibilidad tables.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Backend {
			case tables.BackendCSV, tables.BackendSQLite:
			default:
				return fmt.Errorf("invalid backend %q: must be csv or sqlite", opts.Backend)
			}
			switch tables.CorruptPolicy(opts.CorruptPolicy) {
			case tables.CorruptFail, tables.CorruptReset:
				return nil
			default:
				return fmt.Errorf("invalid corrupt policy %q: must be fail or reset", opts.CorruptPolicy)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "data", "directory holding the CSV tables")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", tables.BackendCSV, "table backend (csv|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db-path", "data/tablas.db", "sqlite database path")
	cmd.PersistentFlags().StringVar(&opts.CorruptPolicy, "corrupt-policy", string(tables.CorruptFail), "what to do with unreadable CSV tables (fail|reset)")

	cmd.AddCommand(NewConsolidateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

func (o *RootOptions) logger() *zap.Logger {
	if !o.Verbose {
		return zap.NewNop()
	}
	l, err := utils.NewLogger("development", "debug")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *RootOptions) openStore(logger *zap.Logger) (tables.Store, error) {
	return tables.Open(tables.Options{
		Backend:       o.Backend,
		Dir:           o.DataDir,
		DBPath:        o.DBPath,
		CorruptPolicy: tables.CorruptPolicy(o.CorruptPolicy),
		Locker:        tables.NewLocalLocker(),
	}, logger)
}
