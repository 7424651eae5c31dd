package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"horarios/models"
	"horarios/services/availability"
	"horarios/services/registration"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRegistrationService struct {
	got     *models.Submission
	outcome *models.SubmissionOutcome
	err     error
}

func (m *mockRegistrationService) Submit(_ context.Context, sub models.Submission) (*models.SubmissionOutcome, error) {
	m.got = &sub
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome != nil {
		return m.outcome, nil
	}
	rec := sub.Record
	return &models.SubmissionOutcome{
		ID:        rec.ID,
		Intervals: availability.Consolidate(rec.ID, rec.Name, rec.Availability),
		Updated:   []string{"maestros", "disponibilidad"},
		Skipped:   []string{"materias_interes"},
	}, nil
}

func newSubmitRouter(svc registration.RegistrationService) *gin.Engine {
	r := gin.New()
	h := NewTeacherHandler(svc, zap.NewNop())
	r.POST("/api/profesores", h.SubmitProfileHandler)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profesores", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitProfile_Created(t *testing.T) {
	svc := &mockRegistrationService{}
	w := post(newSubmitRouter(svc), `{
		"nue": 12345,
		"nombres": "ANA",
		"apellidos": "LOPEZ",
		"nombramiento": "tiempo_completo",
		"disponibilidad": {"Martes": [true, true], "Lunes": [false, true, true, false, true]}
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "12345", body["nue"])
	assert.Equal(t, "MA 8-10, LU 9-11, LU 12-13", body["availability"])

	require.NotNil(t, svc.got)
	rec := svc.got.Record
	assert.Equal(t, "12345", rec.ID)
	assert.Equal(t, "ANA LOPEZ", rec.Name)
	assert.Equal(t, "Martes", rec.Availability[0].Day)
	assert.Contains(t, string(svc.got.Raw), `"nombramiento"`)
}

func TestSubmitProfile_Partial(t *testing.T) {
	svc := &mockRegistrationService{outcome: &models.SubmissionOutcome{
		ID:        "1",
		Intervals: []models.IntervalRecord{{ID: "1", Name: "ANA", Day: "Lunes", StartHour: 9, EndHour: 11}},
		Updated:   []string{"maestros"},
		Skipped:   []string{"materias_interes"},
		Failed:    []models.TableFailure{{Table: "disponibilidad", Error: "table write failed"}},
	}}
	w := post(newSubmitRouter(svc), `{"nue":"1"}`)

	require.Equal(t, http.StatusMultiStatus, w.Code)
	body := decode(t, w)
	failed, ok := body["failedTables"].([]any)
	require.True(t, ok)
	require.Len(t, failed, 1)
	assert.Equal(t, "disponibilidad", failed[0].(map[string]any)["table"])

	assert.Equal(t, "LU 9-11", body["availability"])
	assert.Len(t, body["intervals"], 1)
	assert.Equal(t, []any{"materias_interes"}, body["skipped"])
	assert.Equal(t, []any{"maestros"}, body["updated"])
}

func TestSubmitProfile_BadRequests(t *testing.T) {
	cases := map[string]string{
		"empty body":          ``,
		"not json":            `nue=1`,
		"missing nue":         `{"nombres":"ANA"}`,
		"blank nue":           `{"nue":"  "}`,
		"path in nue":         `{"nue":"../etc"}`,
		"non boolean slot":    `{"nue":"1","disponibilidad":{"Lunes":[1,0]}}`,
		"availability list":   `{"nue":"1","disponibilidad":[true,false]}`,
		"blank interest":      `{"nue":"1","udasInteres":["Cálculo",""]}`,
		"non positive hours":  `{"nue":"1","horasDefinidas":0}`,
		"array payload":       `[{"nue":"1"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &mockRegistrationService{}
			w := post(newSubmitRouter(svc), body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Nil(t, svc.got)
		})
	}
}

func TestSubmitProfile_SinkErrors(t *testing.T) {
	w := post(newSubmitRouter(&mockRegistrationService{err: registration.ErrSinkUnavailable}), `{"nue":"1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = post(newSubmitRouter(&mockRegistrationService{err: errors.Join(registration.ErrSinkWrite, errors.New("boom"))}), `{"nue":"1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Could not write to the database", decode(t, w)["message"])
}
