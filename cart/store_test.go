package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddMergesByProductID(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, Name: "Atlantic Salmon", UnitPrice: 500, Quantity: 1})
	s.Add(LineItem{ProductID: 1, Name: "Atlantic Salmon", UnitPrice: 500, Quantity: 1})

	require.Equal(t, 1, s.Len())
	items := s.Items()
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(1000), s.Subtotal())
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 3, UnitPrice: 100, Quantity: 1})
	s.Add(LineItem{ProductID: 1, UnitPrice: 200, Quantity: 1})
	s.Add(LineItem{ProductID: 2, UnitPrice: 300, Quantity: 1})

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, uint(3), items[0].ProductID)
	assert.Equal(t, uint(1), items[1].ProductID)
	assert.Equal(t, uint(2), items[2].ProductID)
}

func TestStore_AddNegativeQuantityRemovesItem(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: 2})
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: -2})

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.Subtotal())
}

func TestStore_SetQuantityZeroRemovesItem(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: 2})
	s.SetQuantity(1, 0)

	assert.Equal(t, 0, s.Len())
}

func TestStore_RemoveOnlyItemKeepsCouponReference(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 1000, Quantity: 1})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})
	s.Remove(1)

	assert.Equal(t, 0, s.Len())
	require.NotNil(t, s.Coupon())
	assert.Equal(t, "SEA10", s.Coupon().Code)
	assert.Equal(t, int64(0), s.Discount())
	assert.Equal(t, int64(0), s.FinalTotal())
}

func TestStore_ApplyCouponIdempotent(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 1000, Quantity: 1})
	ref := CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10}
	s.ApplyCoupon(ref)
	first := s.Discount()
	s.ApplyCoupon(ref)

	assert.Equal(t, first, s.Discount())
	assert.Equal(t, int64(100), s.Discount())
}

func TestStore_DerivedTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []LineItem
		coupon     *CouponRef
		subtotal   int64
		discount   int64
		finalTotal int64
	}{
		{
			name:       "empty cart",
			subtotal:   0,
			discount:   0,
			finalTotal: 0,
		},
		{
			name: "percentage coupon floors",
			items: []LineItem{
				{ProductID: 1, UnitPrice: 333, Quantity: 1},
			},
			coupon:     &CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10},
			subtotal:   333,
			discount:   33,
			finalTotal: 300,
		},
		{
			name: "fixed coupon clamped to subtotal",
			items: []LineItem{
				{ProductID: 1, UnitPrice: 50, Quantity: 1},
			},
			coupon:     &CouponRef{Code: "FLAT100", Kind: KindFixed, Value: 100},
			subtotal:   50,
			discount:   50,
			finalTotal: 0,
		},
		{
			name: "scenario from promo flyer",
			items: []LineItem{
				{ProductID: 1, UnitPrice: 500, Quantity: 2},
			},
			coupon:     &CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10},
			subtotal:   1000,
			discount:   100,
			finalTotal: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			for _, item := range tt.items {
				s.Add(item)
			}
			if tt.coupon != nil {
				s.ApplyCoupon(*tt.coupon)
			}

			assert.Equal(t, tt.subtotal, s.Subtotal())
			assert.Equal(t, tt.discount, s.Discount())
			assert.Equal(t, tt.finalTotal, s.FinalTotal())
			assert.Equal(t, s.Subtotal()-s.Discount(), s.FinalTotal())
			assert.GreaterOrEqual(t, s.FinalTotal(), int64(0))
		})
	}
}

func TestStore_DiscountRecomputedAfterMutation(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: 2})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})
	require.Equal(t, int64(100), s.Discount())

	s.SetQuantity(1, 1)
	assert.Equal(t, int64(50), s.Discount())
	assert.Equal(t, int64(450), s.FinalTotal())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: 2})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Coupon())
	assert.Equal(t, int64(0), s.FinalTotal())
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 500, Quantity: 2})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})

	snap := s.Snapshot()
	s.Clear()
	require.Equal(t, 0, s.Len())

	s.Restore(snap)
	assert.Equal(t, 1, s.Len())
	require.NotNil(t, s.Coupon())
	assert.Equal(t, int64(900), s.FinalTotal())
}

func TestNewStoreFromState_DropsEmptyItems(t *testing.T) {
	s := NewStoreFromState(State{
		Items: []LineItem{
			{ProductID: 1, UnitPrice: 500, Quantity: 1},
			{ProductID: 2, UnitPrice: 300, Quantity: 0},
		},
	})

	assert.Equal(t, 1, s.Len())
}
