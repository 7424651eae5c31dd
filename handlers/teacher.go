package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"horarios/services/availability"
	"horarios/services/registration"
	"horarios/utils"
)

// TeacherHandler serves the academic-load form submissions.
type TeacherHandler struct {
	Service registration.RegistrationService
	Logger  *zap.Logger
}

func NewTeacherHandler(svc registration.RegistrationService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{Service: svc, Logger: logger}
}

// SubmitProfileHandler stores a teacher profile and refreshes the derived tables.
//
//	201 every table updated
//	207 profile stored, some tables failed (listed in failedTables)
//	400 invalid payload
//	503 no identity store
//	500 identity store rejected the profile, no table touched
func (h *TeacherHandler) SubmitProfileHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	raw, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		utils.JSONError(c, logger, http.StatusBadRequest, "No data received", "")
		return
	}

	sub, err := registration.ParseSubmission(raw)
	if err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	outcome, err := h.Service.Submit(c.Request.Context(), sub)
	switch {
	case errors.Is(err, registration.ErrSinkUnavailable):
		utils.JSONError(c, logger, http.StatusServiceUnavailable, "No database connection", err.Error())
		return
	case err != nil:
		utils.JSONError(c, logger, http.StatusInternalServerError, "Could not write to the database", err.Error())
		return
	}

	status, message := http.StatusCreated, "Teacher registered and tables updated successfully"
	if outcome.Partial() {
		status, message = http.StatusMultiStatus, "Profile saved, but some tables could not be updated"
	}
	c.JSON(status, gin.H{
		"message":      message,
		"nue":          outcome.ID,
		"availability": availability.FormatForDisplay(outcome.Intervals),
		"intervals":    outcome.Intervals,
		"updated":      outcome.Updated,
		"skipped":      outcome.Skipped,
		"failedTables": outcome.Failed,
	})
}
