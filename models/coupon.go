package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshtide/seamart/cart"
)

// Coupon kinds
const (
	CouponKindPercentage = "PERCENTAGE"
	CouponKindFixed      = "FIXED"
)

// Coupon is a named discount rule. Value is a whole percentage for PERCENTAGE
// coupons and an amount in the smallest currency unit for FIXED coupons.
type Coupon struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"uniqueIndex:idx_coupons_code_lower" json:"code"`
	Kind           string         `json:"kind"`
	Value          int64          `json:"value"`
	MinOrderAmount int64          `json:"min_order_amount"`
	ExpiresAt      *time.Time     `json:"expires_at"`
	UsageLimit     *int           `json:"usage_limit"`
	UsedCount      int            `json:"used_count"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Rule converts the record into the pricing engine's validator view.
func (c *Coupon) Rule() cart.Rule {
	return cart.Rule{
		Code:           c.Code,
		Kind:           cart.Kind(c.Kind),
		Value:          c.Value,
		MinOrderAmount: c.MinOrderAmount,
		ExpiresAt:      c.ExpiresAt,
		UsageLimit:     c.UsageLimit,
		UsedCount:      c.UsedCount,
		Active:         c.Active,
	}
}

// IsExpired reports whether the coupon's expiry, if set, has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// UserActiveCoupon tracks the currently applied coupon for each user
type UserActiveCoupon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"` // one active coupon per user
	CouponID  uint      `json:"coupon_id"`
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"applied_at"`
}
