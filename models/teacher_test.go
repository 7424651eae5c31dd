package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier_StringOrNumber(t *testing.T) {
	cases := map[string]string{
		`"12345"`:   "12345",
		`" 12345 "`: "12345",
		`12345`:     "12345",
		`12345.0`:   "12345",
		`1.5`:       "1.5",
		`1e19`:      "1e19",
		`1e3`:       "1000",
		`null`:      "",
	}
	for in, want := range cases {
		var id Identifier
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id.String(), in)
	}

	var id Identifier
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestHours_StringOrNumber(t *testing.T) {
	cases := map[string]Hours{
		`"20"`:   20,
		`" 20 "`: 20,
		`20`:     20,
		`20.0`:   20,
		`""`:     0,
		`null`:   0,
		`"-3"`:   -3,
	}
	for in, want := range cases {
		var h Hours
		require.NoError(t, json.Unmarshal([]byte(in), &h), in)
		assert.Equal(t, want, h, in)
	}

	for _, in := range []string{`"veinte"`, `20.5`, `"1e30"`, `true`} {
		var h Hours
		assert.Error(t, json.Unmarshal([]byte(in), &h), in)
	}
}

func TestAvailabilityGrid_KeepsSubmittedOrder(t *testing.T) {
	var g AvailabilityGrid
	require.NoError(t, json.Unmarshal([]byte(`{"Viernes":[true],"Lunes":[false,true],"Martes":[]}`), &g))

	require.Len(t, g, 3)
	assert.Equal(t, "Viernes", g[0].Day)
	assert.Equal(t, "Lunes", g[1].Day)
	assert.Equal(t, "Martes", g[2].Day)

	slots, ok := g.Slots("Lunes")
	require.True(t, ok)
	assert.Equal(t, []bool{false, true}, slots)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Viernes":[true],"Lunes":[false,true],"Martes":[]}`, string(out))
	assert.Equal(t, `{"Viernes":[true],"Lunes":[false,true],"Martes":[]}`, string(out))
}

func TestAvailabilityGrid_RejectsNonObject(t *testing.T) {
	var g AvailabilityGrid
	assert.Error(t, json.Unmarshal([]byte(`[true,false]`), &g))
	assert.Error(t, json.Unmarshal([]byte(`{"Lunes":"si"}`), &g))
}

func TestNormalize(t *testing.T) {
	req := SubmissionRequest{
		NUE:          " 42 ",
		Nombres:      " José ",
		Apellidos:    "Núñez ",
		Nombramiento: "PTC",
		UdasInteres:  []string{" Cálculo ", "Física"},
		Disponibilidad: AvailabilityGrid{
			{Day: "Miércoles", Slots: []bool{true}},
		},
	}

	rec, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, "José Núñez", rec.Name)
	assert.Equal(t, []string{"Cálculo", "Física"}, rec.Interests)
	require.Len(t, rec.Availability, 1)
	assert.Equal(t, "Miércoles", rec.Availability[0].Day)
}

func TestNormalize_RejectsBlankInterests(t *testing.T) {
	req := SubmissionRequest{NUE: "1", UdasInteres: []string{"Cálculo", "   "}}
	_, err := req.Normalize()
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestNormalize_RejectsBadIdentifiers(t *testing.T) {
	for _, id := range []string{"", "  ", "..", "a/b", `a\b`} {
		req := SubmissionRequest{NUE: Identifier(id)}
		_, err := req.Normalize()
		assert.ErrorIs(t, err, ErrInvalidSubmission, id)
	}
}
