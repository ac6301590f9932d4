package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// CategoryRequest represents the create/update category body
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a new category
func CreateCategory(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	req.Name = utils.SanitizeString(req.Name)

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", req.Name).First(&existing).Error; err == nil {
		utils.Conflict(c, "A category with this name already exists", nil)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "create", "category", category.ID, fmt.Sprintf("Created category %q", category.Name))
	utils.LogInfo("Category created: %s (ID: %d)", category.Name, category.ID)
	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory modifies a category
func UpdateCategory(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	category.Name = utils.SanitizeString(req.Name)
	category.Description = utils.SanitizeString(req.Description)
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "update", "category", category.ID, fmt.Sprintf("Updated category %q", category.Name))
	utils.LogInfo("Category updated: %s (ID: %d)", category.Name, category.ID)
	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// ToggleCategoryBlock flips a category's blocked flag, hiding or exposing all
// of its products.
func ToggleCategoryBlock(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Blocked = !category.Blocked
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to toggle block on category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	action := "unblock"
	if category.Blocked {
		action = "block"
	}
	utils.RecordAudit(c, admin.ID, action, "category", category.ID, fmt.Sprintf("%sed category %q", action, category.Name))
	utils.LogInfo("Category %s: %s (ID: %d)", action, category.Name, category.ID)
	utils.Success(c, "Category updated successfully", gin.H{
		"id":      category.ID,
		"blocked": category.Blocked,
	})
}

// AdminListCategories lists all categories with product counts
func AdminListCategories(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var categories []models.Category
	if err := config.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories for admin: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	views := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		var count int64
		config.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Count(&count)
		views = append(views, gin.H{
			"id":            cat.ID,
			"name":          cat.Name,
			"description":   cat.Description,
			"blocked":       cat.Blocked,
			"product_count": count,
		})
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": views})
}
