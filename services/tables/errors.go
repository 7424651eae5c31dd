package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptSource means an existing table file is present but cannot be parsed.
	ErrCorruptSource = errors.New("table source is corrupt")
	// ErrWriteFailed means the merged table could not be persisted.
	ErrWriteFailed = errors.New("table write failed")
	// ErrLockTimeout means the table lock could not be acquired before the context ended.
	ErrLockTimeout = errors.New("table lock not acquired")
)

// MergeError ties a merge failure to the table it happened on.
type MergeError struct {
	Table string
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s: %v", e.Table, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

func mergeErr(t Table, kind error, cause error) error {
	if cause == nil {
		return &MergeError{Table: t.Name, Err: kind}
	}
	if errors.Is(cause, kind) {
		return &MergeError{Table: t.Name, Err: cause}
	}
	return &MergeError{Table: t.Name, Err: fmt.Errorf("%w: %v", kind, cause)}
}
