package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teacherRepo "horarios/database/repository/teacher"
	"horarios/services/tables"
	"horarios/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves downloads built from the stored profiles and tables.
type ExportHandler struct {
	Teachers     teacherRepo.TeacherRepository
	Tables       tables.Reader
	AllowedNames []string
	Logger       *zap.Logger
}

// allowed matches the X-Requested-By header against the configured names.
// An empty list lets everyone through.
func (h *ExportHandler) allowed(c *gin.Context) bool {
	if len(h.AllowedNames) == 0 {
		return true
	}
	who := strings.ToUpper(c.GetHeader("X-Requested-By"))
	if who == "" {
		return false
	}
	for _, name := range h.AllowedNames {
		if strings.Contains(who, strings.ToUpper(name)) {
			return true
		}
	}
	return false
}

// ListCompletedHandler downloads "Nombres,Apellidos" for every submitted profile.
func (h *ExportHandler) ListCompletedHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	if !h.allowed(c) {
		utils.JSONError(c, logger, http.StatusForbidden, "Not allowed to download registrations", "")
		return
	}
	if h.Teachers == nil {
		utils.JSONError(c, logger, http.StatusServiceUnavailable, "No database connection", "")
		return
	}

	names, err := h.Teachers.ListCompleted(c.Request.Context())
	if err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to list registrations", err.Error())
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Nombres", "Apellidos"})
	for _, n := range names {
		w.Write([]string{n.Nombres, n.Apellidos})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to build CSV", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="nombres.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportWorkbookHandler downloads the three derived tables as one workbook.
func (h *ExportHandler) ExportWorkbookHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	if !h.allowed(c) {
		utils.JSONError(c, logger, http.StatusForbidden, "Not allowed to download the report", "")
		return
	}

	buf, err := tables.ExportWorkbook(c.Request.Context(), h.Tables, tables.All)
	if err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to generate report", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte_profesores.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
