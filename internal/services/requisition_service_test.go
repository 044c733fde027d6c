package services

import (
	"testing"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidateRequisitionItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []models.RequisitionItemInput
		wantErr bool
	}{
		{
			"no items",
			nil,
			true,
		},
		{
			"catalog line",
			[]models.RequisitionItemInput{{SparePartID: intPtr(3), Quantity: 2}},
			false,
		},
		{
			"custom line",
			[]models.RequisitionItemInput{{CustomName: "gasket kit", Quantity: 1, UnitPrice: 45}},
			false,
		},
		{
			"neither catalog nor custom",
			[]models.RequisitionItemInput{{Quantity: 1}},
			true,
		},
		{
			"blank custom name",
			[]models.RequisitionItemInput{{CustomName: "   ", Quantity: 1}},
			true,
		},
		{
			"zero quantity",
			[]models.RequisitionItemInput{{SparePartID: intPtr(3), Quantity: 0}},
			true,
		},
		{
			"negative price",
			[]models.RequisitionItemInput{{SparePartID: intPtr(3), Quantity: 1, UnitPrice: -5}},
			true,
		},
		{
			"second line invalid",
			[]models.RequisitionItemInput{
				{SparePartID: intPtr(3), Quantity: 1},
				{Quantity: 2},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequisitionItems(tt.items)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequisitionTotal(t *testing.T) {
	items := []*models.RequisitionItem{
		{Quantity: 2, UnitPrice: 120},   // 240
		{Quantity: 3, UnitPrice: 30},    // 90
		{Quantity: 1, UnitPrice: 0},     // free custom line
	}
	assert.InDelta(t, 330, requisitionTotal(items), 0.001)
	assert.Zero(t, requisitionTotal(nil))
}

func TestShortageWarnings(t *testing.T) {
	stock := map[int]*models.SparePart{
		1: {ID: 1, Name: "Compressor belt", CurrentStock: 5},
		2: {ID: 2, Name: "Air filter", CurrentStock: 20},
	}
	custom := "hinge bracket"
	items := []*models.RequisitionItem{
		{SparePartID: intPtr(1), Quantity: 8},  // short by 3
		{SparePartID: intPtr(2), Quantity: 4},  // fine
		{CustomName: &custom, Quantity: 2},     // custom, never warned
	}

	warnings := shortageWarnings(items, stock)
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].SparePartID)
	assert.Equal(t, "Compressor belt", warnings[0].PartName)
	assert.Equal(t, 8, warnings[0].Requested)
	assert.Equal(t, 5, warnings[0].Available)
}

func TestShortageWarningsExactStock(t *testing.T) {
	stock := map[int]*models.SparePart{1: {ID: 1, Name: "Belt", CurrentStock: 5}}
	items := []*models.RequisitionItem{{SparePartID: intPtr(1), Quantity: 5}}

	assert.Empty(t, shortageWarnings(items, stock))
}
