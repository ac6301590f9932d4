package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWithCatch() *Store {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, Name: "Tiger Prawns", UnitPrice: 500, Quantity: 2})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})
	return s
}

func TestAssembler_Totals(t *testing.T) {
	s := storeWithCatch()
	a := Assembler{DeliveryFee: 50, TaxRate: 5}

	totals := a.Totals(s)
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(100), totals.Discount)
	assert.Equal(t, int64(900), totals.DiscountedTotal)
	// 5% of 900 = 45, no rounding needed
	assert.Equal(t, int64(45), totals.TaxAmount)
	assert.Equal(t, int64(995), totals.TotalAmount)
}

func TestAssembler_TaxRoundsUp(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 333, Quantity: 1})
	a := Assembler{DeliveryFee: 0, TaxRate: 5}

	totals := a.Totals(s)
	// ceil(333 * 5 / 100) = ceil(16.65) = 17
	assert.Equal(t, int64(17), totals.TaxAmount)
	assert.Equal(t, int64(350), totals.TotalAmount)
}

func TestAssembler_TotalsEmptyCart(t *testing.T) {
	a := Assembler{DeliveryFee: 50, TaxRate: 5}

	totals := a.Totals(NewStore())
	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TaxAmount)
	assert.Equal(t, int64(50), totals.TotalAmount)
}

func TestAssembler_Submission(t *testing.T) {
	s := storeWithCatch()
	a := Assembler{DeliveryFee: 50, TaxRate: 5}

	sub := a.Submission(s, Contact{
		Name:         "Meera Nair",
		Phone:        "+911234567890",
		AddressLines: []string{"12 Harbour Road", "Kochi", "682001"},
	})

	assert.Equal(t, "Meera Nair", sub.CustomerName)
	assert.Equal(t, "12 Harbour Road, Kochi, 682001", sub.CustomerAddress)
	require.Len(t, sub.Items, 1)
	assert.Equal(t, uint(1), sub.Items[0].ProductID)
	assert.Equal(t, 2, sub.Items[0].Quantity)
	assert.Equal(t, int64(500), sub.Items[0].Price)
	assert.Equal(t, "SEA10", sub.CouponCode)
	assert.Equal(t, int64(100), sub.DiscountAmount)
	assert.Equal(t, int64(995), sub.TotalAmount)
}

func TestCheckout_SuccessClearsCart(t *testing.T) {
	s := storeWithCatch()
	flow := NewCheckout(s, Assembler{DeliveryFee: 50, TaxRate: 5})
	require.Equal(t, PhaseIdle, flow.Phase())

	sub, err := flow.Begin(Contact{Name: "Meera Nair", Phone: "+911234567890"})
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, PhaseSubmitting, flow.Phase())

	flow.Confirm()
	assert.Equal(t, PhaseSuccess, flow.Phase())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Coupon())
}

func TestCheckout_FailureLeavesCartIntact(t *testing.T) {
	s := storeWithCatch()
	flow := NewCheckout(s, Assembler{DeliveryFee: 50, TaxRate: 5})

	_, err := flow.Begin(Contact{Name: "Meera Nair", Phone: "+911234567890"})
	require.NoError(t, err)

	submitErr := errors.New("order service unavailable")
	flow.Fail(submitErr)

	assert.Equal(t, PhaseFailed, flow.Phase())
	assert.Equal(t, submitErr, flow.Err())
	assert.Equal(t, 1, s.Len())
	require.NotNil(t, s.Coupon())
	assert.Equal(t, int64(900), s.FinalTotal())

	// flow can be returned to Idle and retried with the same cart
	flow.Reset()
	assert.Equal(t, PhaseIdle, flow.Phase())
	_, err = flow.Begin(Contact{Name: "Meera Nair", Phone: "+911234567890"})
	assert.NoError(t, err)
}

func TestCheckout_BeginEmptyCart(t *testing.T) {
	flow := NewCheckout(NewStore(), Assembler{})

	sub, err := flow.Begin(Contact{Name: "Meera Nair"})
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, PhaseIdle, flow.Phase())
}

func TestCheckout_BeginWhileSubmitting(t *testing.T) {
	flow := NewCheckout(storeWithCatch(), Assembler{})

	_, err := flow.Begin(Contact{Name: "Meera Nair"})
	require.NoError(t, err)

	_, err = flow.Begin(Contact{Name: "Meera Nair"})
	assert.ErrorIs(t, err, ErrSubmitInProgress)
}
