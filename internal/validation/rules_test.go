package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/trustcore/internal/errors"
)

func TestEmail(t *testing.T) {
	rule := Email{}

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"valid email", "ana@corp.com", false},
		{"mixed case", "Ana@Corp.COM", false},
		{"surrounding whitespace", "  ana@corp.com ", false},
		{"missing domain", "ana@", true},
		{"missing at sign", "ana.corp.com", true},
		{"not a string", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRoleLevel(t *testing.T) {
	rule := RoleLevel{}

	assert.NoError(t, rule.Validate(10))
	assert.NoError(t, rule.Validate(90))
	assert.NoError(t, rule.Validate(100))
	assert.Error(t, rule.Validate(0))
	assert.Error(t, rule.Validate(101))
	assert.Error(t, rule.Validate("50"))
}

func TestPermissionIdentifier(t *testing.T) {
	rule := PermissionIdentifier{}

	assert.NoError(t, rule.Validate("view_reports"))
	assert.NoError(t, rule.Validate("all"))
	assert.Error(t, rule.Validate("View Reports"))
	assert.Error(t, rule.Validate("_leading"))
	assert.Error(t, rule.Validate(nil))
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(errors.New("field is required"))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}
