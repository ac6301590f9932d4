package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

func productView(p models.Product) gin.H {
	return gin.H{
		"id":              p.ID,
		"name":            p.Name,
		"description":     p.Description,
		"species":         p.Species,
		"origin":          p.Origin,
		"unit_weight":     p.UnitWeight,
		"price":           p.Price,
		"price_formatted": utils.FormatAmount(p.Price),
		"stock":           p.Stock,
		"in_stock":        p.Stock > 0,
		"category_id":     p.CategoryID,
		"category":        p.Category.Name,
		"image_url":       p.ImageURL,
		"catch_date":      p.CatchDate,
		"is_featured":     p.IsFeatured,
	}
}

// GetProducts lists active products with search, category filter, sorting and
// pagination.
func GetProducts(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).
		Preload("Category").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ? AND products.blocked = ? AND categories.blocked = ?", true, false, false)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.species) LIKE ? OR LOWER(products.description) LIKE ?",
			like, like, like,
		)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := strconv.Atoi(categoryID); err == nil {
			query = query.Where("products.category_id = ?", id)
		}
	}
	if c.Query("featured") == "true" {
		query = query.Where("products.is_featured = ?", true)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		query = query.Order("products.price ASC")
	case "price_desc":
		query = query.Order("products.price DESC")
	case "name":
		query = query.Order("products.name ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]gin.H, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}

	utils.SendPaginatedResponse(c, "Products retrieved successfully", views, pagination)
}

// GetProductDetails returns a single product by id
func GetProductDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %d", id)
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.IsActive || product.Blocked || product.Category.Blocked {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{"product": productView(product)})
}

// ListCategories returns the visible categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	views := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		views = append(views, gin.H{
			"id":          cat.ID,
			"name":        cat.Name,
			"description": cat.Description,
		})
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": views})
}
