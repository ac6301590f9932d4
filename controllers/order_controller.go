package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/events"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

func orderItemView(item models.OrderItem) gin.H {
	return gin.H{
		"product_id": item.ProductID,
		"name":       item.Product.Name,
		"quantity":   item.Quantity,
		"price":      utils.FormatAmount(item.Price),
		"total":      utils.FormatAmount(item.Total),
	}
}

func orderView(order models.Order, withItems bool) gin.H {
	view := gin.H{
		"id":             order.ID,
		"status":         order.Status,
		"subtotal":       utils.FormatAmount(order.Subtotal),
		"discount":       utils.FormatAmount(order.DiscountAmount),
		"delivery_fee":   utils.FormatAmount(order.DeliveryFee),
		"tax":            utils.FormatAmount(order.TaxAmount),
		"total":          utils.FormatAmount(order.TotalAmount),
		"payment_method": order.PaymentMethod,
		"placed_at":      order.CreatedAt,
	}
	if order.CouponCode != "" {
		view["coupon_code"] = order.CouponCode
	}
	if order.CancellationReason != "" {
		view["cancellation_reason"] = order.CancellationReason
	}
	if withItems {
		items := make([]gin.H, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			items = append(items, orderItemView(item))
		}
		view["items"] = items
		view["customer_name"] = order.CustomerName
		view["customer_phone"] = order.CustomerPhone
		view["shipping_address"] = order.CustomerAddress
	}
	return view
}

// ListOrders returns the authenticated user's orders, newest first
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Order("created_at DESC")

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView(order, false))
	}

	utils.SendPaginatedResponse(c, "Orders retrieved successfully", views, pagination)
}

// GetOrderDetails returns one of the user's orders with its items
func GetOrderDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Product").
		Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order %d not found for user %d", id, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": orderView(order, true)})
}

// CancelOrder cancels an order that has not shipped yet and restores stock
func CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Reason is optional, ignore binding errors on an empty body
	_ = c.ShouldBindJSON(&req)

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
		utils.LogError("Cancel failed - Order %d not found for user %d", id, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, models.OrderStatusCancelled) {
		utils.LogError("Cancel failed - Order %d in status %s", order.ID, order.Status)
		utils.BadRequest(c, "Order cannot be cancelled", "Orders can only be cancelled before they ship")
		return
	}

	previous := order.Status
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		order.Status = models.OrderStatusCancelled
		order.CancellationReason = utils.SanitizeString(req.Reason)
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.LogError("Failed to cancel order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}

	events.PublishOrderStatusChanged(c.Request.Context(), &order, previous)

	utils.LogInfo("Order %d cancelled by user %d", order.ID, user.ID)
	utils.Success(c, "Order cancelled successfully", gin.H{"order": orderView(order, false)})
}
