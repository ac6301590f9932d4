package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("meera@freshtide.in"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Anchovy42", false},
		{"too short", "Ab1", true},
		{"no upper", "anchovy42", true},
		{"no digit", "AnchovyFish", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePincode(t *testing.T) {
	assert.NoError(t, ValidatePincode("682001"))
	assert.Error(t, ValidatePincode("0123456"))
	assert.Error(t, ValidatePincode("12345"))
	assert.Error(t, ValidatePincode("abc123"))
}

func TestValidateCouponValue(t *testing.T) {
	assert.NoError(t, ValidateCouponValue("PERCENTAGE", 10))
	assert.NoError(t, ValidateCouponValue("FIXED", 10000))
	assert.Error(t, ValidateCouponValue("PERCENTAGE", 95))
	assert.Error(t, ValidateCouponValue("FIXED", 0))
	assert.Error(t, ValidateCouponValue("PERCENTAGE", -5))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello "))
	assert.NotContains(t, SanitizeString("<script>alert(1)</script>"), "<script>")
}
