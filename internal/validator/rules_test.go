package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		age   int
	}{
		{"valid", "25", true, 25},
		{"lower bound", "14", true, 14},
		{"upper bound", "80", true, 80},
		{"too young", "13", false, 0},
		{"too old", "81", false, 0},
		{"not a number", "двадцать", false, 0},
		{"with spaces", "  30  ", true, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, age, msg := ValidateAge(tt.raw)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.age, age)
			if !tt.valid {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateTextLength_CountsRunes(t *testing.T) {
	// Кириллица: байтов вдвое больше, чем символов
	text := strings.Repeat("о", 1000)
	ok, _ := ValidateTextLength(text, 1000)
	assert.True(t, ok)

	ok, msg := ValidateTextLength(text+"п", 1000)
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}

func TestValidateCoordinates(t *testing.T) {
	ok, _ := ValidateCoordinates(55.75, 37.61)
	assert.True(t, ok)

	ok, _ = ValidateCoordinates(91, 0)
	assert.False(t, ok)

	ok, _ = ValidateCoordinates(0, -181)
	assert.False(t, ok)
}

func TestCustomTags(t *testing.T) {
	v := New()

	type payload struct {
		Role string `json:"role" validate:"omitempty,is-user-role"`
		Type string `json:"type" validate:"omitempty,is-payment-type"`
	}

	require.NoError(t, v.Validate(&payload{Role: "worker", Type: "vacancy_boost"}))
	require.NoError(t, v.Validate(&payload{Role: "employer"}))

	err := v.Validate(&payload{Role: "manager"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "role")

	err = v.Validate(&payload{Type: "premium_gold"})
	require.Error(t, err)
}
