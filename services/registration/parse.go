package registration

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin/binding"

	"horarios/models"
)

// ParseSubmission decodes and validates a raw form payload. All failures wrap
// models.ErrInvalidSubmission.
func ParseSubmission(raw []byte) (models.Submission, error) {
	var req models.SubmissionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return models.Submission{}, fmt.Errorf("%w: %v", models.ErrInvalidSubmission, err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return models.Submission{}, fmt.Errorf("%w: %v", models.ErrInvalidSubmission, err)
	}
	record, err := req.Normalize()
	if err != nil {
		return models.Submission{}, err
	}
	return models.Submission{Record: record, Raw: raw}, nil
}
