package models

import (
	"time"
)

// Order status constants. These are the columns of the admin order board.
const (
	OrderStatusPlaced     = "Placed"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// orderTransitions maps each status to the statuses it may move to.
var orderTransitions = map[string][]string{
	OrderStatusPlaced:     {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatuses lists every recognized order status.
func ValidOrderStatuses() []string {
	return []string{OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed customer order. All amounts are in the smallest currency
// unit (paise).
type Order struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	UserID             uint        `json:"user_id"`
	User               User        `json:"user" gorm:"foreignKey:UserID"`
	AddressID          uint        `json:"address_id"`
	Address            Address     `json:"address" gorm:"foreignKey:AddressID"`
	CustomerName       string      `json:"customer_name"`
	CustomerPhone      string      `json:"customer_phone"`
	CustomerAddress    string      `json:"customer_address"`
	Subtotal           int64       `json:"subtotal"`
	CouponID           uint        `json:"coupon_id"`
	CouponCode         string      `json:"coupon_code"`
	DiscountAmount     int64       `json:"discount_amount"`
	DeliveryFee        int64       `json:"delivery_fee"`
	TaxAmount          int64       `json:"tax_amount"`
	TotalAmount        int64       `json:"total_amount"`
	PaymentMethod      string      `json:"payment_method"`
	Status             string      `json:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	OrderItems         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one product line of an order, priced at order time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     int64   `json:"price"`
	Total     int64   `json:"total"`
}
