package tables

import (
	"context"
	"strings"

	"horarios/models"
)

// Table describes one shared tabular store keyed by teacher identifier.
type Table struct {
	Name      string
	File      string
	KeyColumn string
	Columns   []string
}

var (
	// Teachers holds one summary row per teacher.
	Teachers = Table{
		Name:      "maestros",
		File:      "maestros.csv",
		KeyColumn: "NUE",
		Columns:   []string{"NUE", "Maestro", "Nombramiento"},
	}
	// Interests holds one row per subject a teacher wants to teach.
	Interests = Table{
		Name:      "materias_interes",
		File:      "materias_interes.csv",
		KeyColumn: "NUE",
		Columns:   []string{"NUE", "Maestro", "Materia_Interes"},
	}
	// Availability holds the consolidated free-hour intervals.
	Availability = Table{
		Name:      "disponibilidad",
		File:      "disponibilidad.csv",
		KeyColumn: "NUE",
		Columns:   []string{"NUE", "Maestro", "Dia", "Hora_Inicio", "Hora_Fin"},
	}
)

// All lists the derived tables in the order they are updated.
var All = []Table{Teachers, Interests, Availability}

// Merger replaces every row of a key with a new batch, leaving other keys untouched.
type Merger interface {
	Merge(ctx context.Context, t Table, key string, rows []models.TableRow) error
}

// Reader reads back a whole table.
type Reader interface {
	Rows(ctx context.Context, t Table) (header []string, rows []models.TableRow, err error)
}

// Store is a table backend.
type Store interface {
	Merger
	Reader
	Close() error
}

// NormalizeKey is the comparison form of an identifier: 12345, " 12345" and "12345" match.
func NormalizeKey(v string) string {
	return strings.TrimSpace(v)
}

// unionColumns returns base followed by every column of rows not already present.
func unionColumns(base []string, rows []models.TableRow) []string {
	seen := make(map[string]bool, len(base))
	header := make([]string, 0, len(base))
	for _, c := range base {
		if !seen[c] {
			seen[c] = true
			header = append(header, c)
		}
	}
	for _, r := range rows {
		for _, c := range r {
			if !seen[c.Column] {
				seen[c.Column] = true
				header = append(header, c.Column)
			}
		}
	}
	return header
}

// withoutKey drops the rows whose key column matches key.
func withoutKey(rows []models.TableRow, keyColumn, key string) []models.TableRow {
	key = NormalizeKey(key)
	kept := make([]models.TableRow, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Get(keyColumn); ok && NormalizeKey(v) == key {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
