package models

// TableFailure names a derived table whose update failed.
type TableFailure struct {
	Table string `json:"table"`
	Error string `json:"error"`
}

// SubmissionOutcome reports what happened to every derived table of one submission.
type SubmissionOutcome struct {
	ID        string           `json:"nue"`
	Intervals []IntervalRecord `json:"intervals"`
	Updated   []string         `json:"updatedTables"`
	Skipped   []string         `json:"skippedTables,omitempty"`
	Failed    []TableFailure   `json:"failedTables,omitempty"`
}

// Partial reports whether at least one derived table failed.
func (o *SubmissionOutcome) Partial() bool {
	return len(o.Failed) > 0
}
