package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationResult(t *testing.T) {
	r := NewValidationResult()
	assert.True(t, r.Valid)
	assert.Equal(t, "VALIDATION_SUCCESS", r.Code)
	assert.Equal(t, "INFO", r.Severity)
}

func TestNewValidationError(t *testing.T) {
	r := NewValidationError("NO_SHIFT_TEMPLATES", "no shift templates configured")
	assert.False(t, r.Valid)
	assert.Equal(t, "ERROR", r.Severity)
	assert.Equal(t, "NO_SHIFT_TEMPLATES", r.Code)
}

func TestNewValidationWarning(t *testing.T) {
	r := NewValidationWarning("UNDERSTAFFED", "some intervals are understaffed")
	assert.True(t, r.Valid)
	assert.Equal(t, "WARNING", r.Severity)
}

func TestValidationResultAddContext(t *testing.T) {
	r := NewValidationResult()
	r.AddContext("date", "2024-11-04")
	assert.Equal(t, "2024-11-04", r.Context["date"])
}

func TestValidateDateRange(t *testing.T) {
	d1 := Now()
	d2 := d1.AddDate(0, 0, 1)
	assert.NoError(t, ValidateDateRange(d1, d2))
	assert.NoError(t, ValidateDateRange(d1, d1))
	assert.Error(t, ValidateDateRange(d2, d1))
}
