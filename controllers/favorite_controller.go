package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// AddFavorite saves a product to the user's favorites
func AddFavorite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive || product.Blocked {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Favorite
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existing).Error; err == nil {
		utils.Success(c, "Product already in favorites", nil)
		return
	}

	favorite := models.Favorite{UserID: user.ID, ProductID: product.ID}
	if err := config.DB.Create(&favorite).Error; err != nil {
		utils.LogError("Failed to add favorite for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add favorite", nil)
		return
	}

	utils.LogInfo("User %d added product %d to favorites", user.ID, product.ID)
	utils.Created(c, "Added to favorites", gin.H{"product_id": product.ID})
}

// ListFavorites returns the user's saved products
func ListFavorites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var favorites []models.Favorite
	if err := config.DB.Preload("Product.Category").
		Where("user_id = ?", user.ID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		utils.LogError("Failed to fetch favorites for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch favorites", nil)
		return
	}

	views := make([]gin.H, 0, len(favorites))
	for _, fav := range favorites {
		views = append(views, productView(fav.Product))
	}

	utils.Success(c, "Favorites retrieved successfully", gin.H{"favorites": views})
}

// RemoveFavorite drops a product from the user's favorites
func RemoveFavorite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	result := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).Delete(&models.Favorite{})
	if result.Error != nil {
		utils.LogError("Failed to remove favorite for user %d: %v", user.ID, result.Error)
		utils.InternalServerError(c, "Failed to remove favorite", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Favorite not found")
		return
	}

	utils.Success(c, "Removed from favorites", nil)
}
