// File: models/teacher.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidSubmission is returned when a submission cannot be turned into a TeacherRecord.
var ErrInvalidSubmission = errors.New("invalid submission")

// Identifier is a teacher's NUE. It accepts both JSON strings and JSON numbers
// so that 12345 and "12345" name the same teacher.
type Identifier string

func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Identifier(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("nue must be a string or a number: %w", err)
	}
	text, err := integralText(n)
	if err != nil {
		return err
	}
	*id = Identifier(text)
	return nil
}

// integralText renders n in decimal, dropping the fraction of integral floats such as 12345.0.
func integralText(n json.Number) (string, error) {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		return text, nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", err
	}
	if math.Abs(f) < 1<<63 && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return text, nil
}

func (id Identifier) String() string { return string(id) }

// Hours is a positive whole number of hours. The form posts it as a string
// ("20") or a number; "" and null mean not given.
type Hours int

func (h *Hours) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*h = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*h = 0
			return nil
		}
		data = []byte(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("horasDefinidas must be a number: %w", err)
	}
	text, err := integralText(n)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("horasDefinidas must be a whole number of hours: %q", n.String())
	}
	*h = Hours(v)
	return nil
}

// DayAvailability is one day of the availability grid. Slots[i] is the hour BaseHour+i.
type DayAvailability struct {
	Day   string
	Slots []bool
}

// AvailabilityGrid keeps the days in the order they were submitted.
type AvailabilityGrid []DayAvailability

// With returns the grid with day set to slots, replacing an existing entry in place.
func (g AvailabilityGrid) With(day string, slots []bool) AvailabilityGrid {
	for i := range g {
		if g[i].Day == day {
			g[i].Slots = slots
			return g
		}
	}
	return append(g, DayAvailability{Day: day, Slots: slots})
}

// Slots returns the slots recorded for day.
func (g AvailabilityGrid) Slots(day string) ([]bool, bool) {
	for _, d := range g {
		if d.Day == day {
			return d.Slots, true
		}
	}
	return nil, false
}

func (g *AvailabilityGrid) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*g = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("disponibilidad must be an object keyed by day")
	}

	var grid AvailabilityGrid
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		day, _ := tok.(string)
		var slots []bool
		if err := dec.Decode(&slots); err != nil {
			return fmt.Errorf("disponibilidad[%q]: %w", day, err)
		}
		grid = grid.With(day, slots)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = grid
	return nil
}

func (g AvailabilityGrid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Day)
		if err != nil {
			return nil, err
		}
		slots := d.Slots
		if slots == nil {
			slots = []bool{}
		}
		val, err := json.Marshal(slots)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SubmissionRequest is the payload posted by the academic-load form.
type SubmissionRequest struct {
	NUE                  Identifier       `json:"nue" binding:"required"`
	Nombres              string           `json:"nombres"`
	Apellidos            string           `json:"apellidos"`
	Nombramiento         string           `json:"nombramiento"`
	HorasDefinidas       Hours            `json:"horasDefinidas,omitempty" binding:"omitempty,gt=0"`
	Departamento         string           `json:"departamento,omitempty"`
	PuestoAdministrativo string           `json:"puestoAdministrativo,omitempty"`
	UdasInteres          []string         `json:"udasInteres" binding:"dive,required"`
	Disponibilidad       AvailabilityGrid `json:"disponibilidad"`
}

// TeacherRecord is the validated, normalised form of a submission.
type TeacherRecord struct {
	ID           string
	Name         string
	Appointment  string
	Interests    []string
	Availability AvailabilityGrid
}

// Submission pairs the validated record with the raw request body it came from.
type Submission struct {
	Record TeacherRecord
	Raw    []byte
}

// Normalize validates the request and converts it into a TeacherRecord.
func (r *SubmissionRequest) Normalize() (TeacherRecord, error) {
	id := strings.TrimSpace(r.NUE.String())
	if id == "" {
		return TeacherRecord{}, fmt.Errorf("%w: nue is required", ErrInvalidSubmission)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return TeacherRecord{}, fmt.Errorf("%w: nue %q contains path characters", ErrInvalidSubmission, id)
	}

	name := strings.TrimSpace(strings.TrimSpace(r.Nombres) + " " + strings.TrimSpace(r.Apellidos))

	interests := make([]string, 0, len(r.UdasInteres))
	for i, uda := range r.UdasInteres {
		uda = strings.TrimSpace(uda)
		if uda == "" {
			return TeacherRecord{}, fmt.Errorf("%w: udasInteres[%d] is blank", ErrInvalidSubmission, i)
		}
		interests = append(interests, norm.NFC.String(uda))
	}

	var grid AvailabilityGrid
	for _, d := range r.Disponibilidad {
		grid = grid.With(norm.NFC.String(strings.TrimSpace(d.Day)), d.Slots)
	}

	return TeacherRecord{
		ID:           id,
		Name:         norm.NFC.String(name),
		Appointment:  r.Nombramiento,
		Interests:    interests,
		Availability: grid,
	}, nil
}

// TeacherName is the listing projection of a stored profile.
type TeacherName struct {
	NUE       string `bson:"nue" json:"nue"`
	Nombres   string `bson:"nombres" json:"nombres"`
	Apellidos string `bson:"apellidos" json:"apellidos"`
}
