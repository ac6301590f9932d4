package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

const maxQuantityPerProduct = 10

// AddToCart adds a product to the user's cart with stock validation
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	utils.LogInfo("Adding product ID: %d with quantity: %d to cart for user ID: %d", req.ProductID, req.Quantity, user.ID)

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.LogError("Product not found: %d for user ID: %d", req.ProductID, user.ID)
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.IsActive || product.Blocked {
		utils.LogError("Product ID: %d is not available or blocked", req.ProductID)
		utils.BadRequest(c, "Product not available", nil)
		return
	}

	if product.CategoryID != 0 {
		var category models.Category
		if err := config.DB.First(&category, product.CategoryID).Error; err == nil && category.Blocked {
			utils.LogError("Category ID: %d is blocked for product ID: %d", product.CategoryID, req.ProductID)
			utils.BadRequest(c, "Category blocked by admin", nil)
			return
		}
	}

	if product.Stock < 1 {
		utils.LogError("Product ID: %d is out of stock", req.ProductID)
		utils.BadRequest(c, "Product out of stock", nil)
		return
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	existing := 0
	for _, item := range store.Items() {
		if item.ProductID == product.ID {
			existing = item.Quantity
			break
		}
	}
	requested := existing + req.Quantity
	if requested > maxQuantityPerProduct {
		utils.LogError("Quantity exceeds max limit for product ID: %d, requested: %d", req.ProductID, requested)
		utils.BadRequest(c, fmt.Sprintf("Cannot add more than %d of the same product", maxQuantityPerProduct), nil)
		return
	}
	if requested > product.Stock {
		utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d", req.ProductID, requested, product.Stock)
		utils.BadRequest(c, fmt.Sprintf("Not enough stock. Available: %d", product.Stock), nil)
		return
	}

	store.Add(cart.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
		ImageURL:  product.ImageURL,
	})

	// Remove from favorites once it lands in the cart
	config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).Delete(&models.Favorite{})

	if err := saveCartStore(c.Request.Context(), user.ID, store); err != nil {
		utils.LogError("Failed to save cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save cart", nil)
		return
	}

	utils.LogInfo("Added product ID: %d to cart for user ID: %d", product.ID, user.ID)
	utils.Success(c, "Product added to cart", cartView(store))
}

// GetCart returns the user's cart with derived totals
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	utils.Success(c, "Cart retrieved successfully", cartView(store))
}

// UpdateCart sets the quantity of a cart line item
func UpdateCart(c *gin.Context) {
	utils.LogInfo("UpdateCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Quantity > maxQuantityPerProduct {
		utils.BadRequest(c, fmt.Sprintf("Cannot keep more than %d of the same product", maxQuantityPerProduct), nil)
		return
	}

	if req.Quantity > 0 {
		var product models.Product
		if err := config.DB.First(&product, req.ProductID).Error; err != nil {
			utils.NotFound(c, "Product not found")
			return
		}
		if req.Quantity > product.Stock {
			utils.BadRequest(c, fmt.Sprintf("Not enough stock. Available: %d", product.Stock), nil)
			return
		}
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	store.SetQuantity(req.ProductID, req.Quantity)

	if err := saveCartStore(c.Request.Context(), user.ID, store); err != nil {
		utils.LogError("Failed to save cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save cart", nil)
		return
	}

	utils.Success(c, "Cart updated successfully", cartView(store))
}

// RemoveFromCart deletes a line item from the cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	store.Remove(req.ProductID)

	if err := saveCartStore(c.Request.Context(), user.ID, store); err != nil {
		utils.LogError("Failed to save cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save cart", nil)
		return
	}

	utils.Success(c, "Product removed from cart", cartView(store))
}

// ClearCart empties the cart, applied coupon included
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := CartStorage.Delete(c.Request.Context(), cartKeyForUser(user.ID)); err != nil {
		utils.LogError("Failed to clear cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}
	config.DB.Where("user_id = ?", user.ID).Delete(&models.UserActiveCoupon{})

	utils.LogInfo("Cleared cart for user ID: %d", user.ID)
	utils.Success(c, "Cart cleared successfully", cartView(cart.NewStore()))
}
