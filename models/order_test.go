package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"placed to processing", OrderStatusPlaced, OrderStatusProcessing, true},
		{"placed to cancelled", OrderStatusPlaced, OrderStatusCancelled, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusProcessing, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPlaced, false},
		{"no skipping ahead", OrderStatusPlaced, OrderStatusDelivered, false},
		{"unknown status", "Lost", OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidOrderStatuses(t *testing.T) {
	statuses := ValidOrderStatuses()
	assert.Len(t, statuses, 5)
	assert.Contains(t, statuses, OrderStatusPlaced)
	assert.Contains(t, statuses, OrderStatusCancelled)
}
