package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// ProductRequest represents the create/update product body. Price is in the
// smallest currency unit.
type ProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Species     string     `json:"species"`
	Origin      string     `json:"origin"`
	UnitWeight  string     `json:"unit_weight"`
	Price       int64      `json:"price" binding:"required"`
	Stock       int        `json:"stock"`
	CategoryID  uint       `json:"category_id" binding:"required"`
	ImageURL    string     `json:"image_url"`
	CatchDate   *time.Time `json:"catch_date"`
	IsActive    *bool      `json:"is_active"`
	IsFeatured  *bool      `json:"is_featured"`
}

// CreateProduct adds a new product to the catalog
func CreateProduct(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Create product failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Price <= 0 {
		utils.BadRequest(c, "Invalid price", "Price must be greater than zero")
		return
	}
	if req.Stock < 0 {
		utils.BadRequest(c, "Invalid stock", "Stock cannot be negative")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		Species:     utils.SanitizeString(req.Species),
		Origin:      utils.SanitizeString(req.Origin),
		UnitWeight:  req.UnitWeight,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		CatchDate:   req.CatchDate,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "create", "product", product.ID, fmt.Sprintf("Created product %q", product.Name))
	utils.LogInfo("Product created: %s (ID: %d)", product.Name, product.ID)
	utils.Created(c, "Product created successfully", gin.H{"product": productView(product)})
}

// UpdateProduct modifies an existing product
func UpdateProduct(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Update product failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Price <= 0 {
		utils.BadRequest(c, "Invalid price", "Price must be greater than zero")
		return
	}
	if req.Stock < 0 {
		utils.BadRequest(c, "Invalid stock", "Stock cannot be negative")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product.Name = utils.SanitizeString(req.Name)
	product.Description = utils.SanitizeString(req.Description)
	product.Species = utils.SanitizeString(req.Species)
	product.Origin = utils.SanitizeString(req.Origin)
	if req.UnitWeight != "" {
		product.UnitWeight = req.UnitWeight
	}
	product.Price = req.Price
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.ImageURL = req.ImageURL
	product.CatchDate = req.CatchDate
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "update", "product", product.ID, fmt.Sprintf("Updated product %q", product.Name))
	utils.LogInfo("Product updated: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, "Product updated successfully", gin.H{"product": productView(product)})
}

// DeleteProduct soft-deletes a product
func DeleteProduct(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "delete", "product", product.ID, fmt.Sprintf("Deleted product %q", product.Name))
	utils.LogInfo("Product deleted: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, "Product deleted successfully", nil)
}

// AdjustStockRequest represents a relative stock change
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// AdjustStock applies a relative stock adjustment without going below zero
func AdjustStock(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	newStock := product.Stock + req.Delta
	if newStock < 0 {
		utils.BadRequest(c, "Insufficient stock", fmt.Sprintf("Only %d units available", product.Stock))
		return
	}

	product.Stock = newStock
	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to adjust stock for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to adjust stock", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "adjust_stock", "product", product.ID,
		fmt.Sprintf("Stock %+d (%s), now %d", req.Delta, req.Reason, newStock))
	utils.LogInfo("Stock adjusted for product %d: %+d, now %d", product.ID, req.Delta, newStock)
	utils.Success(c, "Stock adjusted successfully", gin.H{
		"product_id": product.ID,
		"stock":      product.Stock,
	})
}

// AdminListProducts lists all products including inactive and blocked ones
func AdminListProducts(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).Preload("Category").Order("created_at DESC")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR species ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for admin: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]gin.H, 0, len(products))
	for _, p := range products {
		view := productView(p)
		view["is_active"] = p.IsActive
		view["blocked"] = p.Blocked
		views = append(views, view)
	}

	utils.SendPaginatedResponse(c, "Products retrieved successfully", views, pagination)
}
