package registration

import (
	"horarios/models"
	"horarios/services/availability"
	"horarios/services/tables"
)

// Batches holds the rows derived from one teacher record, one batch per table.
type Batches struct {
	Summary      []models.TableRow
	Interests    []models.TableRow
	Intervals    []models.IntervalRecord
	IntervalRows []models.TableRow
}

// Derive builds the summary, interest and availability batches for rec.
func Derive(rec models.TeacherRecord) Batches {
	b := Batches{
		Summary: []models.TableRow{models.NewRow(
			tables.Teachers.Columns[0], rec.ID,
			tables.Teachers.Columns[1], rec.Name,
			tables.Teachers.Columns[2], rec.Appointment,
		)},
	}

	for _, uda := range rec.Interests {
		b.Interests = append(b.Interests, models.NewRow(
			tables.Interests.Columns[0], rec.ID,
			tables.Interests.Columns[1], rec.Name,
			tables.Interests.Columns[2], uda,
		))
	}

	b.Intervals = availability.Consolidate(rec.ID, rec.Name, rec.Availability)
	b.IntervalRows = make([]models.TableRow, 0, len(b.Intervals))
	for _, iv := range b.Intervals {
		b.IntervalRows = append(b.IntervalRows, models.NewRow(
			tables.Availability.Columns[0], iv.ID,
			tables.Availability.Columns[1], iv.Name,
			tables.Availability.Columns[2], iv.Day,
			tables.Availability.Columns[3], models.FormatHour(iv.StartHour),
			tables.Availability.Columns[4], models.FormatHour(iv.EndHour),
		))
	}
	return b
}
