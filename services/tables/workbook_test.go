package tables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"horarios/models"
)

func TestExportWorkbook(t *testing.T) {
	s := newTestStore(t, CorruptFail)
	ctx := context.Background()
	require.NoError(t, s.Merge(ctx, Teachers, "1", []models.TableRow{
		models.NewRow("NUE", "1", "Maestro", "ANA LOPEZ", "Nombramiento", "tiempo_completo"),
	}))
	require.NoError(t, s.Merge(ctx, Availability, "1", []models.TableRow{
		models.NewRow("NUE", "1", "Maestro", "ANA LOPEZ", "Dia", "Lunes", "Hora_Inicio", "9:00", "Hora_Fin", "11:00"),
	}))

	buf, err := ExportWorkbook(ctx, s, All)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "maestros", "materias_interes", "disponibilidad"}, f.GetSheetList())

	rows, err := f.GetRows("maestros")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"NUE", "Maestro", "Nombramiento"},
		{"1", "ANA LOPEZ", "tiempo_completo"},
	}, rows)

	rows, err = f.GetRows("materias_interes")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"NUE", "Maestro", "Materia_Interes"}}, rows)

	rows, err = f.GetRows("disponibilidad")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "ANA LOPEZ", "Lunes", "9:00", "11:00"}, rows[1])
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t, CorruptFail)
	ctx := context.Background()
	require.NoError(t, s.Merge(ctx, Teachers, "1", []models.TableRow{
		models.NewRow("NUE", "1", "Maestro", "ANA LOPEZ", "Nombramiento", "PTC"),
	}))
	require.NoError(t, s.Merge(ctx, Teachers, "2", []models.TableRow{
		models.NewRow("NUE", "2", "Maestro", "LUIS DIAZ", "Nombramiento", "asignatura"),
	}))
	require.NoError(t, s.Merge(ctx, Interests, "1", []models.TableRow{
		models.NewRow("NUE", "1", "Maestro", "ANA LOPEZ", "Materia_Interes", "Cálculo"),
		models.NewRow("NUE", "1", "Maestro", "ANA LOPEZ", "Materia_Interes", "Álgebra"),
	}))
	require.NoError(t, s.Merge(ctx, Availability, "1", []models.TableRow{
		intervalRow("1", "ANA LOPEZ", "Lunes", 9, 11),
		intervalRow("1", "ANA LOPEZ", "Lunes", 12, 13),
		intervalRow("1", "ANA LOPEZ", "Martes", 8, 12),
	}))
	require.NoError(t, s.Merge(ctx, Availability, "3", []models.TableRow{
		intervalRow("3", "EVA RUIZ", "Viernes", 10, 11),
	}))

	rows, err := Summarize(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "ANA LOPEZ", "PTC", "Cálculo, Álgebra", "LU 9-11; LU 12-13 | MA 8-12"},
		{"2", "LUIS DIAZ", "asignatura", "", ""},
		{"3", "EVA RUIZ", "", "", "VI 10-11"},
	}, rows)

	buf, err := ExportWorkbook(ctx, s, All)
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheet, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, sheet, 4)
	assert.Equal(t, SummaryColumns, sheet[0])
	assert.Equal(t, rows[0], sheet[1])
}

func intervalRow(id, name, day string, start, end int) models.TableRow {
	return models.NewRow("NUE", id, "Maestro", name, "Dia", day,
		"Hora_Inicio", models.FormatHour(start), "Hora_Fin", models.FormatHour(end))
}
