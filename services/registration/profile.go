package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"horarios/models"
	"horarios/services/tables"
)

// ProfileExporter writes the full submitted profile of one teacher.
type ProfileExporter interface {
	Export(ctx context.Context, id string, raw []byte) error
}

// CSVProfileExporter writes <Dir>/profesor/<id>.csv with one flattened row.
type CSVProfileExporter struct {
	Dir string
}

// ProfileTableName is the name reported when a profile export fails.
func ProfileTableName(id string) string {
	return "profesor/" + id + ".csv"
}

func (e *CSVProfileExporter) Export(_ context.Context, id string, raw []byte) error {
	row, err := FlattenProfile(raw)
	if err != nil {
		return err
	}
	path := filepath.Join(e.Dir, "profesor", id+".csv")
	return tables.WriteFileAtomic(path, row.Columns(), []models.TableRow{row})
}

// FlattenProfile turns a JSON object into a single row. Nested objects become
// dotted columns ("disponibilidad.Lunes"), arrays are kept as compact JSON,
// null becomes an empty cell. Columns follow document order.
func FlattenProfile(raw []byte) (models.TableRow, error) {
	var row models.TableRow
	if err := flattenObject(raw, "", &row); err != nil {
		return nil, fmt.Errorf("flatten profile: %w", err)
	}
	return row, nil
}

func flattenObject(raw []byte, prefix string, row *models.TableRow) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("profile must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		column := key
		if prefix != "" {
			column = prefix + "." + key
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		value = bytes.TrimSpace(value)

		switch value[0] {
		case '{':
			if err := flattenObject(value, column, row); err != nil {
				return err
			}
			continue
		case '[':
			var compact bytes.Buffer
			if err := json.Compact(&compact, value); err != nil {
				return err
			}
			*row = setCell(*row, column, compact.String())
		case '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return err
			}
			*row = setCell(*row, column, s)
		case 'n':
			*row = setCell(*row, column, "")
		default:
			*row = setCell(*row, column, string(value))
		}
	}
	_, err = dec.Token()
	return err
}

func setCell(row models.TableRow, column, value string) models.TableRow {
	for i := range row {
		if row[i].Column == column {
			row[i].Value = value
			return row
		}
	}
	return append(row, models.Cell{Column: column, Value: value})
}
