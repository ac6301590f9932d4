package cart

import (
	"errors"
	"strings"
)

// Totals is the checkout money breakdown. Tax is applied to the discounted
// total and rounded up; delivery is a flat fee on top.
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	Discount        int64 `json:"discount"`
	DiscountedTotal int64 `json:"discounted_total"`
	DeliveryFee     int64 `json:"delivery_fee"`
	TaxAmount       int64 `json:"tax_amount"`
	TotalAmount     int64 `json:"total_amount"`
}

// Contact carries the customer fields collected at checkout.
type Contact struct {
	Name         string
	Phone        string
	AddressLines []string
}

// SubmissionItem is one order line in the submission payload.
type SubmissionItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// OrderSubmission is the payload handed to the order-creation collaborator.
type OrderSubmission struct {
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	Items           []SubmissionItem `json:"items"`
	TotalAmount     int64            `json:"total_amount"`
	CouponCode      string           `json:"coupon_code,omitempty"`
	DiscountAmount  int64            `json:"discount_amount"`
}

// Assembler turns cart state plus delivery/tax configuration into checkout
// totals and an order submission payload. TaxRate is a whole percentage.
type Assembler struct {
	DeliveryFee int64
	TaxRate     int64
}

// Totals computes the checkout breakdown from the current store state.
func (a Assembler) Totals(s *Store) Totals {
	subtotal := s.Subtotal()
	discount := s.Discount()
	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}
	// ceil(discounted * rate / 100) without floating point
	tax := (discounted*a.TaxRate + 99) / 100
	return Totals{
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountedTotal: discounted,
		DeliveryFee:     a.DeliveryFee,
		TaxAmount:       tax,
		TotalAmount:     discounted + a.DeliveryFee + tax,
	}
}

// Submission builds the order submission payload for the given contact.
func (a Assembler) Submission(s *Store, contact Contact) OrderSubmission {
	totals := a.Totals(s)
	sub := OrderSubmission{
		CustomerName:    contact.Name,
		CustomerPhone:   contact.Phone,
		CustomerAddress: strings.Join(contact.AddressLines, ", "),
		TotalAmount:     totals.TotalAmount,
		DiscountAmount:  totals.Discount,
	}
	if ref := s.Coupon(); ref != nil {
		sub.CouponCode = ref.Code
	}
	for _, item := range s.Items() {
		sub.Items = append(sub.Items, SubmissionItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}
	return sub
}

// Phase is the checkout flow state.
type Phase string

const (
	PhaseIdle       Phase = "Idle"
	PhaseSubmitting Phase = "Submitting"
	PhaseSuccess    Phase = "Success"
	PhaseFailed     Phase = "Failed"
)

var (
	// ErrEmptyCart is returned when checkout begins on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmitInProgress is returned when checkout begins while a previous
	// submission is still pending.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// Checkout drives the Idle -> Submitting -> {Success, Failed} flow as an
// explicit two-phase apply: the cart is snapshotted when submission begins,
// cleared only on Confirm, and restored untouched on Fail.
type Checkout struct {
	Store     *Store
	Assembler Assembler

	phase    Phase
	snapshot State
	err      error
}

// NewCheckout returns a checkout flow in the Idle phase.
func NewCheckout(store *Store, assembler Assembler) *Checkout {
	return &Checkout{Store: store, Assembler: assembler, phase: PhaseIdle}
}

// Phase returns the current flow phase.
func (c *Checkout) Phase() Phase {
	if c.phase == "" {
		return PhaseIdle
	}
	return c.phase
}

// Err returns the error surfaced by the last failed submission.
func (c *Checkout) Err() error {
	return c.err
}

// Begin snapshots the cart and moves to Submitting, returning the payload to
// hand to the order-creation collaborator.
func (c *Checkout) Begin(contact Contact) (*OrderSubmission, error) {
	if c.Phase() == PhaseSubmitting {
		return nil, ErrSubmitInProgress
	}
	if c.Store.Len() == 0 {
		return nil, ErrEmptyCart
	}
	c.snapshot = c.Store.Snapshot()
	c.err = nil
	c.phase = PhaseSubmitting
	sub := c.Assembler.Submission(c.Store, contact)
	return &sub, nil
}

// Confirm marks the submission successful and clears the cart.
func (c *Checkout) Confirm() {
	if c.Phase() != PhaseSubmitting {
		return
	}
	c.Store.Clear()
	c.phase = PhaseSuccess
}

// Fail restores the pre-submission cart state and records the error. The
// flow then returns to Idle so the user can retry.
func (c *Checkout) Fail(err error) {
	if c.Phase() != PhaseSubmitting {
		return
	}
	c.Store.Restore(c.snapshot)
	c.err = err
	c.phase = PhaseFailed
}

// Reset returns the flow to Idle, keeping the cart as is.
func (c *Checkout) Reset() {
	c.phase = PhaseIdle
}
