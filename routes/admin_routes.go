package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/controllers"
	"github.com/freshtide/seamart/middleware"
)

// initAdminRoutes initializes all admin console routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("/logout", controllers.AdminLogout)

		// Dashboard
		protected.GET("/dashboard", controllers.GetDashboardStats)
		protected.GET("/dashboard/top-products", controllers.GetTopProducts)

		// Sales reports
		protected.GET("/reports/sales", controllers.GetSalesReport)
		protected.GET("/reports/sales/export", controllers.ExportSalesReport)

		// Products
		protected.GET("/products", controllers.AdminListProducts)
		protected.POST("/products", controllers.CreateProduct)
		protected.PUT("/products/:id", controllers.UpdateProduct)
		protected.DELETE("/products/:id", controllers.DeleteProduct)
		protected.PATCH("/products/:id/stock", controllers.AdjustStock)

		// Categories
		protected.GET("/categories", controllers.AdminListCategories)
		protected.POST("/categories", controllers.CreateCategory)
		protected.PUT("/categories/:id", controllers.UpdateCategory)
		protected.PATCH("/categories/:id/block", controllers.ToggleCategoryBlock)

		// Coupons
		protected.GET("/coupons", controllers.GetCoupons)
		protected.POST("/coupons", controllers.CreateCoupon)
		protected.PUT("/coupons/:id", controllers.UpdateCoupon)
		protected.DELETE("/coupons/:id", controllers.DeleteCoupon)

		// Orders
		protected.GET("/orders", controllers.AdminListOrders)
		protected.GET("/orders/:id", controllers.AdminGetOrder)
		protected.PATCH("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		// Customers
		protected.GET("/users", controllers.GetUsers)
		protected.PATCH("/users/:id/block", controllers.BlockUser)
		protected.PATCH("/users/:id/unblock", controllers.UnblockUser)

		// Delivery zones
		protected.GET("/delivery-zones", controllers.ListDeliveryZones)
		protected.POST("/delivery-zones", controllers.CreateDeliveryZone)
		protected.PUT("/delivery-zones/:id", controllers.UpdateDeliveryZone)
		protected.DELETE("/delivery-zones/:id", controllers.DeleteDeliveryZone)

		// Landing page
		protected.GET("/landing/sections", controllers.AdminListLandingSections)
		protected.POST("/landing/sections", controllers.CreateLandingSection)
		protected.PUT("/landing/sections/:id", controllers.UpdateLandingSection)
		protected.DELETE("/landing/sections/:id", controllers.DeleteLandingSection)
		protected.POST("/landing/sections/reorder", controllers.ReorderLandingSections)

		// Audit trail
		protected.GET("/audit-logs", controllers.GetAuditLogs)
	}
}
