package tables

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"horarios/models"
)

// CorruptPolicy decides what a merge does with a table file it cannot parse.
type CorruptPolicy string

const (
	// CorruptFail refuses the merge and leaves the file untouched.
	CorruptFail CorruptPolicy = "fail"
	// CorruptReset treats the file as empty and overwrites it.
	CorruptReset CorruptPolicy = "reset"
)

// CSVStore keeps each table in its own CSV file under dir.
type CSVStore struct {
	dir    string
	policy CorruptPolicy
	locker Locker
	logger *zap.Logger
}

// NewCSVStore returns a CSV backed Store. A nil locker serialises merges in-process only.
func NewCSVStore(dir string, policy CorruptPolicy, locker Locker, logger *zap.Logger) *CSVStore {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == "" {
		policy = CorruptFail
	}
	return &CSVStore{dir: dir, policy: policy, locker: locker, logger: logger}
}

// Path returns the file backing t.
func (s *CSVStore) Path(t Table) string {
	return filepath.Join(s.dir, t.File)
}

// Merge replaces the rows of key in t with rows. An empty batch removes the key's rows.
func (s *CSVStore) Merge(ctx context.Context, t Table, key string, rows []models.TableRow) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return mergeErr(t, ErrWriteFailed, err)
	}

	unlock, err := s.locker.Lock(ctx, s.Path(t))
	if err != nil {
		return mergeErr(t, ErrLockTimeout, err)
	}
	defer unlock()

	header, existing, err := s.load(t)
	if err != nil {
		if s.policy != CorruptReset {
			s.logger.Error("table source is corrupt, refusing to overwrite",
				zap.String("table", t.Name), zap.String("path", s.Path(t)), zap.Error(err))
			return mergeErr(t, ErrCorruptSource, err)
		}
		s.logger.Warn("table source is corrupt, rebuilding from scratch",
			zap.String("table", t.Name), zap.String("path", s.Path(t)), zap.Error(err))
		header, existing = nil, nil
	}
	if len(header) == 0 {
		header = t.Columns
	}

	merged := append(withoutKey(existing, t.KeyColumn, key), rows...)
	header = unionColumns(header, rows)

	if err := WriteFileAtomic(s.Path(t), header, merged); err != nil {
		s.logger.Error("failed to write table", zap.String("table", t.Name), zap.Error(err))
		return mergeErr(t, ErrWriteFailed, err)
	}

	s.logger.Debug("table merged",
		zap.String("table", t.Name),
		zap.String("key", key),
		zap.Int("newRows", len(rows)),
		zap.Int("totalRows", len(merged)))
	return nil
}

// Rows reads t back. A table that was never written has the declared columns and no rows.
func (s *CSVStore) Rows(_ context.Context, t Table) ([]string, []models.TableRow, error) {
	header, rows, err := s.load(t)
	if err != nil {
		return nil, nil, &MergeError{Table: t.Name, Err: err}
	}
	if len(header) == 0 {
		header = t.Columns
	}
	return header, rows, nil
}

func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) load(t Table) ([]string, []models.TableRow, error) {
	header, rows, err := ReadFile(s.Path(t))
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 && !slices.Contains(header, t.KeyColumn) {
		return nil, nil, fmt.Errorf("%w: key column %q missing from header", ErrCorruptSource, t.KeyColumn)
	}
	return header, rows, nil
}
