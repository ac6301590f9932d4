package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/events"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// AdminListOrders lists orders across all users with status filtering
func AdminListOrders(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{}).Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		valid := false
		for _, s := range models.ValidOrderStatuses() {
			if strings.EqualFold(s, status) {
				query = query.Where("status = ?", s)
				valid = true
				break
			}
		}
		if !valid {
			utils.BadRequest(c, "Invalid status filter", fmt.Sprintf("Status must be one of %v", models.ValidOrderStatuses()))
			return
		}
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for admin: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := orderView(order, false)
		view["user"] = gin.H{
			"id":       order.User.ID,
			"username": order.User.Username,
			"email":    order.User.Email,
		}
		views = append(views, view)
	}

	utils.SendPaginatedResponse(c, "Orders retrieved successfully", views, pagination)
}

// AdminGetOrder returns any order with items for the admin console
func AdminGetOrder(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Product").Preload("User").First(&order, id).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	view := orderView(order, true)
	view["user"] = gin.H{
		"id":       order.User.ID,
		"username": order.User.Username,
		"email":    order.User.Email,
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": view})
}

// UpdateOrderStatusRequest represents a status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// AdminUpdateOrderStatus moves an order along the fulfilment board. Cancelling
// restores stock.
func AdminUpdateOrderStatus(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var target string
	for _, s := range models.ValidOrderStatuses() {
		if strings.EqualFold(s, req.Status) {
			target = s
			break
		}
	}
	if target == "" {
		utils.BadRequest(c, "Invalid status", fmt.Sprintf("Status must be one of %v", models.ValidOrderStatuses()))
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, target) {
		utils.LogError("Rejected status change for order %d: %s -> %s", order.ID, order.Status, target)
		utils.BadRequest(c, "Invalid status transition",
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, target))
		return
	}

	previous := order.Status
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if target == models.OrderStatusCancelled {
			for _, item := range order.OrderItems {
				if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
			order.CancellationReason = utils.SanitizeString(req.Reason)
		}
		order.Status = target
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.LogError("Failed to update status for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	events.PublishOrderStatusChanged(c.Request.Context(), &order, previous)
	utils.RecordAudit(c, admin.ID, "update_status", "order", order.ID,
		fmt.Sprintf("Status %s -> %s", previous, target))

	utils.LogInfo("Order %d status updated: %s -> %s", order.ID, previous, target)
	utils.Success(c, "Order status updated successfully", gin.H{"order": orderView(order, false)})
}
