package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// DashboardStats represents the overall store statistics
type DashboardStats struct {
	TotalSales     string `json:"total_sales"`
	TotalOrders    int64  `json:"total_orders"`
	TotalCustomers int64  `json:"total_customers"`
	TotalProducts  int64  `json:"total_products"`
	PendingOrders  int64  `json:"pending_orders"`
}

// TopSellingItem represents a best-selling product or category
type TopSellingItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Revenue  string `json:"revenue"`
	Quantity int64  `json:"quantity"`
}

// GetDashboardStats returns the admin dashboard summary
func GetDashboardStats(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var stats DashboardStats
	var totalSales int64

	config.DB.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&totalSales)
	stats.TotalSales = utils.FormatAmount(totalSales)

	config.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	config.DB.Model(&models.User{}).Count(&stats.TotalCustomers)
	config.DB.Model(&models.Product{}).Count(&stats.TotalProducts)
	config.DB.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusPlaced, models.OrderStatusProcessing}).
		Count(&stats.PendingOrders)

	utils.Success(c, "Dashboard statistics retrieved successfully", gin.H{"stats": stats})
}

// GetTopProducts returns the best-selling products by quantity over the last
// 30 days.
func GetTopProducts(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -30)

	rows, err := config.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id, products.name, SUM(order_items.total) AS revenue, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.status != ?", since, models.OrderStatusCancelled).
		Group("order_items.product_id, products.name").
		Order("quantity DESC").
		Limit(10).Rows()
	if err != nil {
		utils.LogError("Failed to fetch top products: %v", err)
		utils.InternalServerError(c, "Failed to fetch top products", nil)
		return
	}
	defer rows.Close()

	var items []TopSellingItem
	for rows.Next() {
		var id uint
		var name string
		var revenue, quantity int64
		if err := rows.Scan(&id, &name, &revenue, &quantity); err != nil {
			continue
		}
		items = append(items, TopSellingItem{
			ID:       id,
			Name:     name,
			Revenue:  utils.FormatAmount(revenue),
			Quantity: quantity,
		})
	}

	utils.Success(c, "Top products retrieved successfully", gin.H{"products": items})
}
