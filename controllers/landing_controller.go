package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

func sectionView(s models.LandingSection) gin.H {
	return gin.H{
		"id":        s.ID,
		"kind":      s.Kind,
		"title":     s.Title,
		"subtitle":  s.Subtitle,
		"body":      s.Body,
		"image_url": s.ImageURL,
		"link_url":  s.LinkURL,
		"position":  s.Position,
	}
}

// GetLandingPage returns the published landing sections in display order,
// plus the current featured products.
func GetLandingPage(c *gin.Context) {
	var sections []models.LandingSection
	if err := config.DB.Where("published = ?", true).Order("position ASC").Find(&sections).Error; err != nil {
		utils.LogError("Failed to fetch landing sections: %v", err)
		utils.InternalServerError(c, "Failed to load landing page", nil)
		return
	}

	sectionViews := make([]gin.H, 0, len(sections))
	for _, s := range sections {
		sectionViews = append(sectionViews, sectionView(s))
	}

	var featured []models.Product
	config.DB.Preload("Category").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_featured = ? AND products.is_active = ? AND products.blocked = ? AND categories.blocked = ?",
			true, true, false, false).
		Limit(8).Find(&featured)

	featuredViews := make([]gin.H, 0, len(featured))
	for _, p := range featured {
		featuredViews = append(featuredViews, productView(p))
	}

	utils.Success(c, "Landing page retrieved successfully", gin.H{
		"sections": sectionViews,
		"featured": featuredViews,
	})
}

// LandingSectionRequest represents the create/update section body
type LandingSectionRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	Position  int    `json:"position"`
	Published *bool  `json:"published"`
}

func validSectionKind(kind string) bool {
	switch kind {
	case models.SectionKindHero, models.SectionKindBanner, models.SectionKindFeatured, models.SectionKindText:
		return true
	}
	return false
}

// CreateLandingSection adds a landing page block
func CreateLandingSection(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req LandingSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if !validSectionKind(req.Kind) {
		utils.BadRequest(c, "Invalid section kind", "Kind must be hero, banner, featured or text")
		return
	}

	section := models.LandingSection{
		Kind:     req.Kind,
		Title:    utils.SanitizeString(req.Title),
		Subtitle: utils.SanitizeString(req.Subtitle),
		Body:     utils.SanitizeString(req.Body),
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
	}
	if req.Published != nil {
		section.Published = *req.Published
	}

	if err := config.DB.Create(&section).Error; err != nil {
		utils.LogError("Failed to create landing section: %v", err)
		utils.InternalServerError(c, "Failed to create section", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "create", "landing_section", section.ID, fmt.Sprintf("Created %s section", section.Kind))
	utils.LogInfo("Landing section created: %s (ID: %d)", section.Kind, section.ID)
	utils.Created(c, "Section created successfully", gin.H{"section": sectionView(section)})
}

// UpdateLandingSection modifies a landing page block
func UpdateLandingSection(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid section ID", nil)
		return
	}

	var section models.LandingSection
	if err := config.DB.First(&section, id).Error; err != nil {
		utils.NotFound(c, "Section not found")
		return
	}

	var req LandingSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if !validSectionKind(req.Kind) {
		utils.BadRequest(c, "Invalid section kind", "Kind must be hero, banner, featured or text")
		return
	}

	section.Kind = req.Kind
	section.Title = utils.SanitizeString(req.Title)
	section.Subtitle = utils.SanitizeString(req.Subtitle)
	section.Body = utils.SanitizeString(req.Body)
	section.ImageURL = req.ImageURL
	section.LinkURL = req.LinkURL
	section.Position = req.Position
	if req.Published != nil {
		section.Published = *req.Published
	}

	if err := config.DB.Save(&section).Error; err != nil {
		utils.LogError("Failed to update landing section %d: %v", section.ID, err)
		utils.InternalServerError(c, "Failed to update section", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "update", "landing_section", section.ID, fmt.Sprintf("Updated %s section", section.Kind))
	utils.Success(c, "Section updated successfully", gin.H{"section": sectionView(section)})
}

// DeleteLandingSection removes a landing page block
func DeleteLandingSection(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid section ID", nil)
		return
	}

	var section models.LandingSection
	if err := config.DB.First(&section, id).Error; err != nil {
		utils.NotFound(c, "Section not found")
		return
	}

	if err := config.DB.Delete(&section).Error; err != nil {
		utils.LogError("Failed to delete landing section %d: %v", section.ID, err)
		utils.InternalServerError(c, "Failed to delete section", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "delete", "landing_section", section.ID, fmt.Sprintf("Deleted %s section", section.Kind))
	utils.Success(c, "Section deleted successfully", nil)
}

// ReorderLandingSections applies a new position ordering in one transaction
func ReorderLandingSections(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req struct {
		SectionIDs []uint `json:"section_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if len(req.SectionIDs) == 0 {
		utils.BadRequest(c, "No sections provided", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for position, id := range req.SectionIDs {
			result := tx.Model(&models.LandingSection{}).Where("id = ?", id).Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("section %d not found", id)
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to reorder landing sections: %v", err)
		utils.BadRequest(c, "Failed to reorder sections", err.Error())
		return
	}

	utils.RecordAudit(c, admin.ID, "reorder", "landing_section", 0, fmt.Sprintf("Reordered %d sections", len(req.SectionIDs)))
	utils.Success(c, "Sections reordered successfully", nil)
}

// AdminListLandingSections lists all sections, published or not
func AdminListLandingSections(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var sections []models.LandingSection
	if err := config.DB.Order("position ASC").Find(&sections).Error; err != nil {
		utils.LogError("Failed to fetch landing sections for admin: %v", err)
		utils.InternalServerError(c, "Failed to fetch sections", nil)
		return
	}

	views := make([]gin.H, 0, len(sections))
	for _, s := range sections {
		view := sectionView(s)
		view["published"] = s.Published
		views = append(views, view)
	}

	utils.Success(c, "Sections retrieved successfully", gin.H{"sections": views})
}
