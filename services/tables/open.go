package tables

import (
	"fmt"

	"go.uber.org/zap"
)

// Backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Options selects and configures a table backend.
type Options struct {
	Backend       string
	Dir           string
	DBPath        string
	CorruptPolicy CorruptPolicy
	Locker        Locker
}

// Open builds the Store described by opts.
func Open(opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Backend {
	case "", BackendCSV:
		return NewCSVStore(opts.Dir, opts.CorruptPolicy, opts.Locker, logger), nil
	case BackendSQLite:
		return OpenSQLite(opts.DBPath, logger)
	default:
		return nil, fmt.Errorf("unknown table backend %q", opts.Backend)
	}
}
