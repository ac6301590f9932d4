package cart

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Kind is the discount kind of a coupon.
type Kind string

const (
	KindPercentage Kind = "PERCENTAGE"
	KindFixed      Kind = "FIXED"
)

// CouponRef is the slice of a coupon the cart keeps after a successful
// validation: enough to recompute the discount locally as the cart changes,
// without going back to the database.
type CouponRef struct {
	Code  string `json:"code"`
	Kind  Kind   `json:"kind"`
	Value int64  `json:"value"`
}

// Rule is the server-side coupon record as seen by the validator.
type Rule struct {
	Code           string
	Kind           Kind
	Value          int64
	MinOrderAmount int64
	ExpiresAt      *time.Time
	UsageLimit     *int
	UsedCount      int
	Active         bool
}

// Validation error codes.
const (
	CodeInvalidCode  = "InvalidCode"
	CodeInactive     = "Inactive"
	CodeExpired      = "Expired"
	CodeLimitReached = "LimitReached"
	CodeBelowMinimum = "BelowMinimum"
)

// ValidationError is a terminal coupon validation failure. The cart stays in
// its pre-validation state when one is returned.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Source looks up a coupon rule by its canonical code. Implementations return
// (nil, nil) when no such coupon exists.
type Source interface {
	FindByCode(ctx context.Context, code string) (*Rule, error)
}

// Result is a successful validation: the discount computed against the
// subtotal handed in, plus the raw reference for later recomputation.
type Result struct {
	Ref      CouponRef
	Discount int64
}

// Validator checks coupon applicability against a cart subtotal. Validation
// has no side effects; the usage count is incremented at order creation only.
type Validator struct {
	Source Source
}

// CanonicalCode returns the case-insensitive canonical form of a coupon code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate looks up the coupon and runs the policy checks in order, first
// failure wins: inactive, expired, usage limit, minimum order amount.
func (v *Validator) Validate(ctx context.Context, code string, subtotal int64) (*Result, error) {
	canonical := CanonicalCode(code)
	if canonical == "" {
		return nil, &ValidationError{Code: CodeInvalidCode, Message: "Coupon code is required"}
	}

	rule, err := v.Source.FindByCode(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, &ValidationError{Code: CodeInvalidCode, Message: "Invalid coupon code"}
	}

	if verr := rule.Check(subtotal, time.Now()); verr != nil {
		return nil, verr
	}

	ref := CouponRef{Code: rule.Code, Kind: rule.Kind, Value: rule.Value}
	return &Result{Ref: ref, Discount: ComputeDiscount(ref, subtotal)}, nil
}

// Check runs the policy checks for a rule against a subtotal, short-circuiting
// on the first failure.
func (r *Rule) Check(subtotal int64, now time.Time) *ValidationError {
	if !r.Active {
		return &ValidationError{Code: CodeInactive, Message: "Coupon is not active"}
	}
	if r.ExpiresAt != nil && now.After(*r.ExpiresAt) {
		return &ValidationError{Code: CodeExpired, Message: "Coupon has expired"}
	}
	if r.UsageLimit != nil && r.UsedCount >= *r.UsageLimit {
		return &ValidationError{Code: CodeLimitReached, Message: "Coupon usage limit reached"}
	}
	if subtotal < r.MinOrderAmount {
		return &ValidationError{
			Code:    CodeBelowMinimum,
			Message: fmt.Sprintf("Order total must be at least %d to use this coupon", r.MinOrderAmount),
		}
	}
	return nil
}

// ComputeDiscount applies a coupon reference to a subtotal. Percentage
// discounts floor, and the result is clamped to [0, subtotal] so the total
// can never go negative.
func ComputeDiscount(ref CouponRef, subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	var discount int64
	switch ref.Kind {
	case KindPercentage:
		discount = subtotal * ref.Value / 100
	case KindFixed:
		discount = ref.Value
	}
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
