package tables

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"horarios/models"
	"horarios/services/availability"
)

// SummarySheet is the first sheet of the workbook: one row per teacher.
const SummarySheet = "resumen"

// SummaryColumns are the headers of SummarySheet.
var SummaryColumns = []string{"NUE", "Maestro", "Nombramiento", "UDAs de Interes", "Disponibilidad"}

// ExportWorkbook renders a per-teacher summary sheet followed by the given
// tables, one sheet each.
func ExportWorkbook(ctx context.Context, src Reader, tables []Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	summary, err := Summarize(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(f, SummarySheet, SummaryColumns, summary); err != nil {
		return nil, err
	}

	for _, t := range tables {
		header, rows, err := src.Rows(ctx, t)
		if err != nil {
			return nil, err
		}
		if _, err := f.NewSheet(t.Name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", t.Name, err)
		}
		values := make([][]string, len(rows))
		for r, row := range rows {
			values[r] = make([]string, len(header))
			for c, col := range header {
				values[r][c], _ = row.Get(col)
			}
		}
		if err := writeSheet(f, t.Name, header, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to generate workbook: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}
	for r, row := range rows {
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %s: %w", r+1, sheet, err)
		}
	}
	return nil
}

type teacherSummary struct {
	id          string
	name        string
	appointment string
	interests   []string
	intervals   []models.IntervalRecord
}

// Summarize joins the three derived tables into one row per teacher, in
// SummaryColumns order. Teachers appear in maestros order; keys found only
// in the other tables follow in the order they are first seen.
func Summarize(ctx context.Context, src Reader) ([][]string, error) {
	var order []string
	byKey := map[string]*teacherSummary{}
	entry := func(row models.TableRow) *teacherSummary {
		id, _ := row.Get(Teachers.KeyColumn)
		key := NormalizeKey(id)
		s, ok := byKey[key]
		if !ok {
			s = &teacherSummary{id: key}
			byKey[key] = s
			order = append(order, key)
		}
		if s.name == "" {
			s.name, _ = row.Get("Maestro")
		}
		return s
	}

	_, rows, err := src.Rows(ctx, Teachers)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := entry(row)
		s.appointment, _ = row.Get("Nombramiento")
	}

	_, rows, err = src.Rows(ctx, Interests)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := entry(row)
		if uda, _ := row.Get("Materia_Interes"); uda != "" {
			s.interests = append(s.interests, uda)
		}
	}

	_, rows, err = src.Rows(ctx, Availability)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := entry(row)
		day, _ := row.Get("Dia")
		startText, _ := row.Get("Hora_Inicio")
		endText, _ := row.Get("Hora_Fin")
		start, err := models.ParseHour(startText)
		if err != nil {
			continue
		}
		end, err := models.ParseHour(endText)
		if err != nil {
			continue
		}
		s.intervals = append(s.intervals, models.IntervalRecord{
			ID: s.id, Name: s.name, Day: day, StartHour: start, EndHour: end,
		})
	}

	out := make([][]string, 0, len(order))
	for _, key := range order {
		s := byKey[key]
		out = append(out, []string{
			s.id,
			s.name,
			s.appointment,
			strings.Join(s.interests, ", "),
			availability.FormatForCSV(s.intervals),
		})
	}
	return out, nil
}
