package services

import (
	"testing"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateJob(t *testing.T) {
	valid := &models.CreateJobRequest{
		EquipmentID: 4,
		Title:       "Evaporator fan seized",
		Priority:    models.JobPriorityHigh,
	}
	assert.NoError(t, validateCreateJob(valid))

	// Priority may be omitted, the service defaults it
	assert.NoError(t, validateCreateJob(&models.CreateJobRequest{EquipmentID: 4, Title: "Fan check"}))

	tests := []struct {
		name string
		req  *models.CreateJobRequest
	}{
		{"missing title", &models.CreateJobRequest{EquipmentID: 4}},
		{"whitespace title", &models.CreateJobRequest{EquipmentID: 4, Title: "   "}},
		{"missing equipment", &models.CreateJobRequest{Title: "Fan check"}},
		{"bad priority", &models.CreateJobRequest{EquipmentID: 4, Title: "Fan check", Priority: "asap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateJob(tt.req)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestValidateCompletion(t *testing.T) {
	assert.NoError(t, validateCompletion(&models.CompleteJobRequest{
		RootCause:   "Bearing worn out",
		ActionTaken: "Replaced bearing and re-tensioned belt",
	}))

	err := validateCompletion(&models.CompleteJobRequest{ActionTaken: "Replaced bearing"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = validateCompletion(&models.CompleteJobRequest{RootCause: "Bearing worn out"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = validateCompletion(&models.CompleteJobRequest{RootCause: "  ", ActionTaken: "  "})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidateReason(t *testing.T) {
	assert.NoError(t, validateReason("waiting on parts", "reason"))

	err := validateReason("", "reason")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "reason")
}
