package registration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	teacherRepo "horarios/database/repository/teacher"
	"horarios/models"
	"horarios/services/tables"
)

var (
	// ErrSinkUnavailable means there is no connection to the identity store.
	ErrSinkUnavailable = errors.New("identity store unavailable")
	// ErrSinkWrite means the identity store rejected the profile. No table was touched.
	ErrSinkWrite = errors.New("identity store write failed")
)

// RegistrationService accepts teacher submissions.
type RegistrationService interface {
	Submit(ctx context.Context, sub models.Submission) (*models.SubmissionOutcome, error)
}

// DefaultRegistrationService stores the profile, then updates every derived table.
// Table updates are independent: a failed one is reported in the outcome and
// does not undo the others.
type DefaultRegistrationService struct {
	Teachers teacherRepo.TeacherRepository
	Tables   tables.Merger
	Profiles ProfileExporter
	Logger   *zap.Logger
}

func (s *DefaultRegistrationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultRegistrationService) Submit(ctx context.Context, sub models.Submission) (*models.SubmissionOutcome, error) {
	logger := s.logger()
	rec := sub.Record

	if s.Teachers == nil {
		return nil, ErrSinkUnavailable
	}
	if err := s.Teachers.Upsert(ctx, rec.ID, sub.Raw); err != nil {
		logger.Error("failed to store teacher profile", zap.String("nue", rec.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}

	batches := Derive(rec)
	outcome := &models.SubmissionOutcome{ID: rec.ID, Intervals: batches.Intervals}

	if s.Profiles != nil {
		name := ProfileTableName(rec.ID)
		if err := s.Profiles.Export(ctx, rec.ID, sub.Raw); err != nil {
			logger.Error("failed to export teacher profile", zap.String("nue", rec.ID), zap.Error(err))
			outcome.Failed = append(outcome.Failed, models.TableFailure{Table: name, Error: err.Error()})
		} else {
			outcome.Updated = append(outcome.Updated, name)
		}
	}

	s.merge(ctx, outcome, tables.Teachers, rec.ID, batches.Summary)

	// No interests means "not specified", so the previous ones are kept.
	if len(batches.Interests) == 0 {
		outcome.Skipped = append(outcome.Skipped, tables.Interests.Name)
	} else {
		s.merge(ctx, outcome, tables.Interests, rec.ID, batches.Interests)
	}

	// Availability is a complete replacement: an empty batch clears the teacher's intervals.
	s.merge(ctx, outcome, tables.Availability, rec.ID, batches.IntervalRows)

	if outcome.Partial() {
		logger.Warn("submission partially stored", zap.String("nue", rec.ID), zap.Any("failed", outcome.Failed))
	} else {
		logger.Info("submission stored", zap.String("nue", rec.ID), zap.Int("intervals", len(batches.Intervals)))
	}
	return outcome, nil
}

func (s *DefaultRegistrationService) merge(ctx context.Context, outcome *models.SubmissionOutcome, t tables.Table, key string, rows []models.TableRow) {
	if err := s.Tables.Merge(ctx, t, key, rows); err != nil {
		s.logger().Error("failed to update table", zap.String("table", t.Name), zap.String("nue", key), zap.Error(err))
		outcome.Failed = append(outcome.Failed, models.TableFailure{Table: t.Name, Error: err.Error()})
		return
	}
	outcome.Updated = append(outcome.Updated, t.Name)
}
