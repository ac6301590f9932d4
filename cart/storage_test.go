package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_LoadMissingKey(t *testing.T) {
	storage := NewMemoryStorage()

	state, err := storage.Load(context.Background(), "user:42")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStorage_SaveAndLoad(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore()
	s.Add(LineItem{ProductID: 1, Name: "Mackerel", UnitPrice: 250, Quantity: 3})
	s.ApplyCoupon(CouponRef{Code: "SEA10", Kind: KindPercentage, Value: 10})

	require.NoError(t, storage.Save(context.Background(), "user:42", s.Snapshot()))

	state, err := storage.Load(context.Background(), "user:42")
	require.NoError(t, err)
	require.NotNil(t, state)

	restored := NewStoreFromState(*state)
	assert.Equal(t, int64(750), restored.Subtotal())
	assert.Equal(t, int64(75), restored.Discount())
	require.NotNil(t, restored.Coupon())
	assert.Equal(t, "SEA10", restored.Coupon().Code)
}

func TestMemoryStorage_LoadReturnsCopy(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore()
	s.Add(LineItem{ProductID: 1, UnitPrice: 250, Quantity: 1})
	require.NoError(t, storage.Save(context.Background(), "user:42", s.Snapshot()))

	first, err := storage.Load(context.Background(), "user:42")
	require.NoError(t, err)
	first.Items[0].Quantity = 99

	second, err := storage.Load(context.Background(), "user:42")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Items[0].Quantity)
}

func TestMemoryStorage_Delete(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(context.Background(), "user:42", State{}))
	require.NoError(t, storage.Delete(context.Background(), "user:42"))

	state, err := storage.Load(context.Background(), "user:42")
	require.NoError(t, err)
	assert.Nil(t, state)
}
