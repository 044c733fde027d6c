package services

import (
	"testing"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func compressorTemplate() *models.ChecklistTemplate {
	return &models.ChecklistTemplate{
		ID:   1,
		Name: "Compressor restart checklist",
		Items: []*models.ChecklistItem{
			{ID: 11, TemplateID: 1, Position: 1, Description: "Oil level within range", Required: true},
			{ID: 12, TemplateID: 1, Position: 2, Description: "Belt tension checked", Required: true},
			{ID: 13, TemplateID: 1, Position: 3, Description: "Noted ambient temperature", Required: false},
		},
	}
}

func TestMissingRequiredItems(t *testing.T) {
	tmpl := compressorTemplate()

	t.Run("all answered", func(t *testing.T) {
		answers := []models.ChecklistItemAnswer{
			{ItemID: 11, Value: strPtr(models.ChecklistValuePass)},
			{ItemID: 12, Value: strPtr(models.ChecklistValueNA)},
		}
		assert.Empty(t, missingRequiredItems(tmpl, answers))
	})

	t.Run("required item unanswered", func(t *testing.T) {
		answers := []models.ChecklistItemAnswer{
			{ItemID: 11, Value: strPtr(models.ChecklistValuePass)},
		}
		missing := missingRequiredItems(tmpl, answers)
		require.Len(t, missing, 1)
		assert.Equal(t, "Belt tension checked", missing[0])
	})

	t.Run("optional item may be skipped", func(t *testing.T) {
		answers := []models.ChecklistItemAnswer{
			{ItemID: 11, Value: strPtr(models.ChecklistValuePass)},
			{ItemID: 12, Value: strPtr(models.ChecklistValuePass)},
		}
		assert.Empty(t, missingRequiredItems(tmpl, answers))
	})

	t.Run("fail without note still satisfies the item", func(t *testing.T) {
		answers := []models.ChecklistItemAnswer{
			{ItemID: 11, Value: strPtr(models.ChecklistValueFail)},
			{ItemID: 12, Value: strPtr(models.ChecklistValuePass)},
		}
		assert.Empty(t, missingRequiredItems(tmpl, answers))
	})

	t.Run("nil value counts as unanswered", func(t *testing.T) {
		answers := []models.ChecklistItemAnswer{
			{ItemID: 11},
			{ItemID: 12, Value: strPtr(models.ChecklistValuePass)},
		}
		missing := missingRequiredItems(tmpl, answers)
		require.Len(t, missing, 1)
		assert.Equal(t, "Oil level within range", missing[0])
	})
}

func TestValidAnswerValues(t *testing.T) {
	tmpl := compressorTemplate()

	assert.NoError(t, validAnswerValues(tmpl, []models.ChecklistItemAnswer{
		{ItemID: 11, Value: strPtr(models.ChecklistValuePass)},
		{ItemID: 13, Value: nil},
	}))

	err := validAnswerValues(tmpl, []models.ChecklistItemAnswer{
		{ItemID: 99, Value: strPtr(models.ChecklistValuePass)},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = validAnswerValues(tmpl, []models.ChecklistItemAnswer{
		{ItemID: 11, Value: strPtr("maybe")},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAnswerPassed(t *testing.T) {
	assert.True(t, answerPassed(strPtr(models.ChecklistValuePass)))

	// Only an explicit pass counts, na in particular does not
	assert.False(t, answerPassed(strPtr(models.ChecklistValueNA)))
	assert.False(t, answerPassed(strPtr(models.ChecklistValueFail)))
	assert.False(t, answerPassed(nil))
}
