package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/controllers"
	"github.com/freshtide/seamart/middleware"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/register", controllers.RegisterUser)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/resend-otp", controllers.ResendOTP)
	router.POST("/login", controllers.LoginUser)
	router.POST("/forgot-password", controllers.ForgotPassword)
	router.POST("/reset-password", controllers.ResetPassword)

	// Catalog
	router.GET("/landing", controllers.GetLandingPage)
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/categories", controllers.ListCategories)

	// Protected routes
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.Logout)

		// Cart operations
		protected.POST("/cart/add", controllers.AddToCart)
		protected.GET("/cart", controllers.GetCart)
		protected.PUT("/cart/update", controllers.UpdateCart)
		protected.DELETE("/cart/remove", controllers.RemoveFromCart)
		protected.DELETE("/cart/clear", controllers.ClearCart)

		// Coupons
		protected.GET("/coupons", controllers.ListAvailableCoupons)
		protected.POST("/cart/coupon", controllers.ApplyCoupon)
		protected.DELETE("/cart/coupon", controllers.RemoveCoupon)

		// Favorites
		protected.POST("/favorites", controllers.AddFavorite)
		protected.GET("/favorites", controllers.ListFavorites)
		protected.DELETE("/favorites/:productId", controllers.RemoveFavorite)

		// Addresses
		protected.POST("/addresses", controllers.AddAddress)
		protected.GET("/addresses", controllers.ListAddresses)
		protected.PUT("/addresses/:id", controllers.UpdateAddress)
		protected.DELETE("/addresses/:id", controllers.DeleteAddress)
		protected.PATCH("/addresses/:id/default", controllers.SetDefaultAddress)

		// Checkout
		protected.GET("/checkout", controllers.GetCheckoutSummary)
		protected.POST("/checkout", controllers.PlaceOrder)

		// Payment
		protected.POST("/payment/initiate", controllers.InitiateRazorpayPayment)
		protected.POST("/payment/verify", controllers.VerifyRazorpayPayment)

		// Orders
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.POST("/orders/:id/cancel", controllers.CancelOrder)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)
	}
}
