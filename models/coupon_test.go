package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshtide/seamart/cart"
)

func TestCouponRule(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour)
	limit := 100
	coupon := Coupon{
		Code:           "MONSOON20",
		Kind:           CouponKindPercentage,
		Value:          20,
		MinOrderAmount: 50000,
		ExpiresAt:      &expiry,
		UsageLimit:     &limit,
		UsedCount:      3,
		Active:         true,
	}

	rule := coupon.Rule()
	assert.Equal(t, "MONSOON20", rule.Code)
	assert.Equal(t, cart.KindPercentage, rule.Kind)
	assert.Equal(t, int64(20), rule.Value)
	assert.Equal(t, int64(50000), rule.MinOrderAmount)
	require.NotNil(t, rule.UsageLimit)
	assert.Equal(t, 100, *rule.UsageLimit)
	assert.Equal(t, 3, rule.UsedCount)
	assert.True(t, rule.Active)
}

func TestCouponIsExpired(t *testing.T) {
	now := time.Now()

	open := Coupon{Code: "OPEN"}
	assert.False(t, open.IsExpired(now), "no expiry never expires")

	past := now.Add(-time.Hour)
	expired := Coupon{Code: "GONE", ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))

	future := now.Add(time.Hour)
	live := Coupon{Code: "LIVE", ExpiresAt: &future}
	assert.False(t, live.IsExpired(now))
}
