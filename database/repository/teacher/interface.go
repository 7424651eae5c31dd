package teacherRepo

import (
	"context"

	"horarios/models"
)

// TeacherRepository is the identity document store: one full profile per NUE.
type TeacherRepository interface {
	// Upsert stores the raw submitted profile under id, creating it if needed.
	Upsert(ctx context.Context, id string, raw []byte) error
	// ListCompleted returns the name of every teacher that submitted a profile.
	ListCompleted(ctx context.Context) ([]models.TeacherName, error)
	Ping(ctx context.Context) error
}
