package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validationf("quantity must be positive")))
	assert.Equal(t, KindConflict, KindOf(Conflictf("requisition is already approved")))
	assert.Equal(t, KindStock, KindOf(Stockf("insufficient stock")))
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("job %d not found", 42)))

	// Non-workflow errors report an empty kind
	assert.Equal(t, Kind(""), KindOf(fmt.Errorf("connection refused")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	inner := Stockf("insufficient stock for part %d", 7)
	wrapped := fmt.Errorf("approve requisition: %w", inner)

	assert.Equal(t, KindStock, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindStock))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestErrorMessage(t *testing.T) {
	err := NotFoundf("spare part %d not found", 99)
	assert.Equal(t, "spare part 99 not found", err.Error())
}
