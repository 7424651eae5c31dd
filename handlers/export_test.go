package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"horarios/models"
	"horarios/services/tables"
)

type mockTeacherRepo struct {
	names []models.TeacherName
	err   error
}

func (m *mockTeacherRepo) Upsert(context.Context, string, []byte) error { return m.err }
func (m *mockTeacherRepo) ListCompleted(context.Context) ([]models.TeacherName, error) {
	return m.names, m.err
}
func (m *mockTeacherRepo) Ping(context.Context) error { return m.err }

func newExportRouter(h *ExportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/registros_completados", h.ListCompletedHandler)
	r.GET("/api/profesores/reporte.xlsx", h.ExportWorkbookHandler)
	return r
}

func get(r *gin.Engine, path, requestedBy string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if requestedBy != "" {
		req.Header.Set("X-Requested-By", requestedBy)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestListCompleted(t *testing.T) {
	h := &ExportHandler{
		Teachers: &mockTeacherRepo{names: []models.TeacherName{
			{NUE: "1", Nombres: "ANA MARIA", Apellidos: "LOPEZ, PEREZ"},
			{NUE: "2", Nombres: "LUIS", Apellidos: "DIAZ"},
		}},
		Logger: zap.NewNop(),
	}

	w := get(newExportRouter(h), "/api/registros_completados", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nombres,Apellidos\nANA MARIA,\"LOPEZ, PEREZ\"\nLUIS,DIAZ\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "nombres.csv")
}

func TestListCompleted_AllowList(t *testing.T) {
	h := &ExportHandler{
		Teachers:     &mockTeacherRepo{},
		AllowedNames: []string{"coordinacion"},
		Logger:       zap.NewNop(),
	}
	r := newExportRouter(h)

	assert.Equal(t, http.StatusForbidden, get(r, "/api/registros_completados", "").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/registros_completados", "ANA LOPEZ").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/registros_completados", "COORDINACION ACADEMICA").Code)
}

func TestListCompleted_Errors(t *testing.T) {
	w := get(newExportRouter(&ExportHandler{Logger: zap.NewNop()}), "/api/registros_completados", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	h := &ExportHandler{Teachers: &mockTeacherRepo{err: errors.New("down")}, Logger: zap.NewNop()}
	w = get(newExportRouter(h), "/api/registros_completados", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportWorkbook(t *testing.T) {
	store := tables.NewCSVStore(t.TempDir(), tables.CorruptFail, nil, nil)
	require.NoError(t, store.Merge(context.Background(), tables.Interests, "1", []models.TableRow{
		models.NewRow("NUE", "1", "Maestro", "ANA", "Materia_Interes", "Cálculo"),
	}))

	w := get(newExportRouter(&ExportHandler{Tables: store, Logger: zap.NewNop()}), "/api/profesores/reporte.xlsx", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("materias_interes")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "ANA", "Cálculo"}, rows[1])
}
