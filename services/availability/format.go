package availability

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"horarios/models"
)

var dayAbbreviations = map[string]string{
	"Lunes":     "LU",
	"Martes":    "MA",
	"Miércoles": "MI",
	"Jueves":    "JU",
	"Viernes":   "VI",
	"Sábado":    "SA",
	"Domingo":   "DO",
}

// DayAbbreviation returns the two letter label used in reports, e.g. "MI" for "Miércoles".
func DayAbbreviation(day string) string {
	if abbr, ok := dayAbbreviations[day]; ok {
		return abbr
	}
	if utf8.RuneCountInString(day) <= 2 {
		return strings.ToUpper(day)
	}
	return strings.ToUpper(string([]rune(day)[:2]))
}

// Format renders intervals as "LU 9-11, LU 12-13, MA 8-12".
// Blocks of the same day are joined with blockSep and days with daySep.
func Format(intervals []models.IntervalRecord, daySep, blockSep string) string {
	var days []string
	var blocks [][]string
	for _, iv := range intervals {
		block := fmt.Sprintf("%s %d-%d", DayAbbreviation(iv.Day), iv.StartHour, iv.EndHour)
		if n := len(days); n > 0 && days[n-1] == iv.Day {
			blocks[n-1] = append(blocks[n-1], block)
			continue
		}
		days = append(days, iv.Day)
		blocks = append(blocks, []string{block})
	}

	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = strings.Join(b, blockSep)
	}
	return strings.Join(parts, daySep)
}

// FormatForDisplay is the comma separated form shown in listings.
func FormatForDisplay(intervals []models.IntervalRecord) string {
	return Format(intervals, ", ", ", ")
}

// FormatForCSV keeps the summary inside a single CSV cell.
func FormatForCSV(intervals []models.IntervalRecord) string {
	return Format(intervals, " | ", "; ")
}
