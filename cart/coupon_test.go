package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rules map[string]*Rule
}

func (f *fakeSource) FindByCode(ctx context.Context, code string) (*Rule, error) {
	return f.rules[code], nil
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func validRule() *Rule {
	return &Rule{
		Code:           "SEA10",
		Kind:           KindPercentage,
		Value:          10,
		MinOrderAmount: 500,
		ExpiresAt:      timePtr(time.Now().Add(24 * time.Hour)),
		UsageLimit:     intPtr(100),
		UsedCount:      0,
		Active:         true,
	}
}

func TestValidator_Validate_Success(t *testing.T) {
	v := &Validator{Source: &fakeSource{rules: map[string]*Rule{"SEA10": validRule()}}}

	res, err := v.Validate(context.Background(), "sea10", 1000)
	require.NoError(t, err)
	assert.Equal(t, "SEA10", res.Ref.Code)
	assert.Equal(t, KindPercentage, res.Ref.Kind)
	assert.Equal(t, int64(10), res.Ref.Value)
	assert.Equal(t, int64(100), res.Discount)
}

func TestValidator_Validate_Failures(t *testing.T) {
	expired := validRule()
	expired.Code = "OLD"
	expired.ExpiresAt = timePtr(time.Now().Add(-time.Hour))

	inactive := validRule()
	inactive.Code = "OFF"
	inactive.Active = false

	exhausted := validRule()
	exhausted.Code = "GONE"
	exhausted.UsageLimit = intPtr(5)
	exhausted.UsedCount = 5

	// inactive and expired at once: inactive wins, checks short-circuit in order
	both := validRule()
	both.Code = "BOTH"
	both.Active = false
	both.ExpiresAt = timePtr(time.Now().Add(-time.Hour))

	source := &fakeSource{rules: map[string]*Rule{
		"SEA10": validRule(),
		"OLD":   expired,
		"OFF":   inactive,
		"GONE":  exhausted,
		"BOTH":  both,
	}}
	v := &Validator{Source: source}

	tests := []struct {
		name     string
		code     string
		subtotal int64
		wantCode string
	}{
		{"unknown code", "NOPE", 1000, CodeInvalidCode},
		{"blank code", "   ", 1000, CodeInvalidCode},
		{"inactive", "OFF", 1000, CodeInactive},
		{"expired regardless of subtotal", "OLD", 100000, CodeExpired},
		{"usage limit reached", "GONE", 1000, CodeLimitReached},
		{"below minimum", "SEA10", 300, CodeBelowMinimum},
		{"inactive beats expired", "BOTH", 1000, CodeInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Validate(context.Background(), tt.code, tt.subtotal)
			assert.Nil(t, res)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestValidator_Validate_BelowMinimumMentionsMinimum(t *testing.T) {
	v := &Validator{Source: &fakeSource{rules: map[string]*Rule{"SEA10": validRule()}}}

	_, err := v.Validate(context.Background(), "SEA10", 300)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "500")
}

func TestRule_Check_NoExpiryNoLimit(t *testing.T) {
	rule := &Rule{Code: "EVERGREEN", Kind: KindFixed, Value: 50, Active: true}

	assert.Nil(t, rule.Check(0, time.Now()))
	assert.Nil(t, rule.Check(10000, time.Now()))
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		ref      CouponRef
		subtotal int64
		want     int64
	}{
		{"percentage floors", CouponRef{Kind: KindPercentage, Value: 10}, 999, 99},
		{"percentage exact", CouponRef{Kind: KindPercentage, Value: 10}, 1000, 100},
		{"percentage never exceeds subtotal", CouponRef{Kind: KindPercentage, Value: 100}, 750, 750},
		{"fixed verbatim", CouponRef{Kind: KindFixed, Value: 100}, 1000, 100},
		{"fixed clamped", CouponRef{Kind: KindFixed, Value: 100}, 50, 50},
		{"zero subtotal", CouponRef{Kind: KindFixed, Value: 100}, 0, 0},
		{"negative value clamped to zero", CouponRef{Kind: KindFixed, Value: -10}, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(tt.ref, tt.subtotal)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, tt.subtotal)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestCanonicalCode(t *testing.T) {
	assert.Equal(t, "SEA10", CanonicalCode("  sea10 "))
	assert.Equal(t, "SEA10", CanonicalCode("SEA10"))
	assert.Equal(t, "", CanonicalCode("   "))
}
