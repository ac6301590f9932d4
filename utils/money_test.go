package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "0.00"},
		{"whole rupees", 10000, "100.00"},
		{"with paise", 12345, "123.45"},
		{"single digit paise", 105, "1.05"},
		{"under one rupee", 9, "0.09"},
		{"negative", -250, "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}
