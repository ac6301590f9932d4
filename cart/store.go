package cart

// State is the serializable cart content: line items in insertion order and
// the applied coupon reference, if any. Subtotal, discount and final total
// are derived, never stored.
type State struct {
	Items  []LineItem `json:"items"`
	Coupon *CouponRef `json:"coupon,omitempty"`
}

// Store is a mutable cart container. It is meant to be constructed and passed
// around explicitly, not held as a package global, so handlers and tests can
// each own their instance.
type Store struct {
	items  []LineItem
	coupon *CouponRef
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromState rebuilds a store from persisted state. Items with a
// non-positive quantity are dropped.
func NewStoreFromState(state State) *Store {
	s := &Store{}
	for _, item := range state.Items {
		if item.Quantity > 0 {
			s.items = append(s.items, item)
		}
	}
	if state.Coupon != nil {
		ref := *state.Coupon
		s.coupon = &ref
	}
	return s
}

// Add merges the item into the cart by product id, summing quantities. A
// merge that drives the quantity to zero or below removes the line item.
func (s *Store) Add(item LineItem) {
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			if s.items[i].Quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			return
		}
	}
	if item.Quantity > 0 {
		s.items = append(s.items, item)
	}
}

// SetQuantity sets the quantity of an existing line item. A quantity of zero
// or below removes the item. Unknown product ids are ignored.
func (s *Store) SetQuantity(productID uint, quantity int) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			if quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			return
		}
	}
}

// Remove deletes the line item with the given product id.
func (s *Store) Remove(productID uint) {
	s.SetQuantity(productID, 0)
}

// ApplyCoupon stores the coupon reference. Applying the same code again is a
// no-op, so the discount is never duplicated. The caller is responsible for
// validating the coupon first.
func (s *Store) ApplyCoupon(ref CouponRef) {
	if s.coupon != nil && s.coupon.Code == ref.Code {
		return
	}
	copied := ref
	s.coupon = &copied
}

// RemoveCoupon clears the applied coupon reference.
func (s *Store) RemoveCoupon() {
	s.coupon = nil
}

// Clear empties the cart, coupon included.
func (s *Store) Clear() {
	s.items = nil
	s.coupon = nil
}

// Items returns the line items in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Coupon returns the applied coupon reference, or nil.
func (s *Store) Coupon() *CouponRef {
	if s.coupon == nil {
		return nil
	}
	ref := *s.coupon
	return &ref
}

// Len returns the number of line items.
func (s *Store) Len() int {
	return len(s.items)
}

// Subtotal is the sum of unit price times quantity over all line items,
// recomputed on every read.
func (s *Store) Subtotal() int64 {
	var total int64
	for _, item := range s.items {
		total += item.Total()
	}
	return total
}

// Discount is the coupon discount against the current subtotal. The coupon
// reference stays applied even if the cart later drops below the coupon's
// minimum; re-validation is the caller's responsibility.
func (s *Store) Discount() int64 {
	if s.coupon == nil {
		return 0
	}
	return ComputeDiscount(*s.coupon, s.Subtotal())
}

// FinalTotal is subtotal minus discount, never negative.
func (s *Store) FinalTotal() int64 {
	total := s.Subtotal() - s.Discount()
	if total < 0 {
		total = 0
	}
	return total
}

// Snapshot returns a copy of the current state for persistence or rollback.
func (s *Store) Snapshot() State {
	state := State{Items: make([]LineItem, len(s.items))}
	copy(state.Items, s.items)
	if s.coupon != nil {
		ref := *s.coupon
		state.Coupon = &ref
	}
	return state
}

// Restore replaces the store content with a previously taken snapshot.
func (s *Store) Restore(state State) {
	s.items = make([]LineItem, len(state.Items))
	copy(s.items, state.Items)
	s.coupon = nil
	if state.Coupon != nil {
		ref := *state.Coupon
		s.coupon = &ref
	}
}
