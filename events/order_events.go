package events

import (
	"context"
	"fmt"
	"time"

	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the wire shape for order lifecycle notifications.
type OrderEvent struct {
	Event          string    `json:"event"`
	OrderID        uint      `json:"order_id"`
	UserID         uint      `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalAmount    int64     `json:"total_amount"`
	PaymentMethod  string    `json:"payment_method"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PublishOrderCreated emits an order.created event. Publish failures are
// logged and dropped so order placement never blocks on the broker.
func PublishOrderCreated(ctx context.Context, order *models.Order) {
	publish(ctx, OrderEvent{
		Event:         EventOrderCreated,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		OccurredAt:    time.Now().UTC(),
	})
}

// PublishOrderStatusChanged emits an order.status_changed event.
func PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous string) {
	publish(ctx, OrderEvent{
		Event:          EventOrderStatusChanged,
		OrderID:        order.ID,
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previous,
		TotalAmount:    order.TotalAmount,
		PaymentMethod:  order.PaymentMethod,
		OccurredAt:     time.Now().UTC(),
	})
}

func publish(ctx context.Context, event OrderEvent) {
	if Default == nil {
		return
	}
	key := fmt.Sprintf("order:%d", event.OrderID)
	if err := Default.Publish(ctx, key, event); err != nil {
		utils.LogError("Failed to publish %s for order %d: %v", event.Event, event.OrderID, err)
	}
}
