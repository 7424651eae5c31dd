// services/availability/consolidate.go
package availability

import "horarios/models"

// Consolidate collapses each day's boolean grid into maximal runs of free hours.
// Days keep grid order and intervals within a day are sorted by start hour.
// An empty or all-false day contributes nothing.
func Consolidate(id, name string, grid models.AvailabilityGrid) []models.IntervalRecord {
	intervals := []models.IntervalRecord{}
	for _, day := range grid {
		for _, run := range freeRuns(day.Slots) {
			intervals = append(intervals, models.IntervalRecord{
				ID:        id,
				Name:      name,
				Day:       day.Day,
				StartHour: run.Start + models.BaseHour,
				EndHour:   run.End + models.BaseHour,
			})
		}
	}
	return intervals
}

// continuousInterval is a half-open [Start, End) range of slot indices.
type continuousInterval struct {
	Start int
	End   int
}

// freeRuns run-length encodes the true entries of slots.
func freeRuns(slots []bool) []continuousInterval {
	var runs []continuousInterval
	i := 0
	for i < len(slots) {
		if !slots[i] {
			i++
			continue
		}
		j := i
		for j < len(slots) && slots[j] {
			j++
		}
		runs = append(runs, continuousInterval{Start: i, End: j})
		i = j
	}
	return runs
}
