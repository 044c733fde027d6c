package services

import (
	"testing"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReturnableQuantity(t *testing.T) {
	tests := []struct {
		name         string
		usageQty     int
		priorReturns int
		expected     int
	}{
		{"nothing returned yet", 10, 0, 10},
		{"partial return", 10, 4, 6},
		{"fully returned", 10, 10, 0},
		{"over-returned clamps to zero", 10, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReturnableQuantity(tt.usageQty, tt.priorReturns))
		})
	}
}

func TestValidateCreateReturn(t *testing.T) {
	valid := &models.CreateReturnRequest{
		UsageID:  5,
		Quantity: 2,
		Reason:   models.ReturnReasonExcess,
	}
	assert.NoError(t, validateCreateReturn(valid))

	tests := []struct {
		name string
		req  *models.CreateReturnRequest
	}{
		{"missing usage", &models.CreateReturnRequest{Quantity: 2, Reason: models.ReturnReasonExcess}},
		{"zero quantity", &models.CreateReturnRequest{UsageID: 5, Reason: models.ReturnReasonExcess}},
		{"unknown reason", &models.CreateReturnRequest{UsageID: 5, Quantity: 2, Reason: "changed_mind"}},
		{"empty reason", &models.CreateReturnRequest{UsageID: 5, Quantity: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateReturn(tt.req)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}
