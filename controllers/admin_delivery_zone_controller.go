package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// DeliveryZoneRequest represents the create/update zone body. Fee is in the
// smallest currency unit.
type DeliveryZoneRequest struct {
	Pincode  string `json:"pincode" binding:"required"`
	Fee      int64  `json:"fee"`
	IsActive *bool  `json:"is_active"`
}

func zoneView(z models.DeliveryZone) gin.H {
	return gin.H{
		"id":            z.ID,
		"pincode":       z.Pincode,
		"fee":           z.Fee,
		"fee_formatted": utils.FormatAmount(z.Fee),
		"is_active":     z.IsActive,
	}
}

// CreateDeliveryZone maps a pincode to a delivery fee
func CreateDeliveryZone(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req DeliveryZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := utils.ValidatePincode(req.Pincode); err != nil {
		utils.BadRequest(c, "Invalid pincode", err.Error())
		return
	}
	if req.Fee < 0 {
		utils.BadRequest(c, "Invalid fee", "Fee cannot be negative")
		return
	}

	var existing models.DeliveryZone
	if err := config.DB.Where("pincode = ?", req.Pincode).First(&existing).Error; err == nil {
		utils.Conflict(c, "A zone for this pincode already exists", nil)
		return
	}

	zone := models.DeliveryZone{
		Pincode:  req.Pincode,
		Fee:      req.Fee,
		IsActive: true,
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&zone).Error; err != nil {
		utils.LogError("Failed to create delivery zone: %v", err)
		utils.InternalServerError(c, "Failed to create delivery zone", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "create", "delivery_zone", zone.ID, fmt.Sprintf("Created zone %s", zone.Pincode))
	utils.LogInfo("Delivery zone created: %s (ID: %d)", zone.Pincode, zone.ID)
	utils.Created(c, "Delivery zone created successfully", gin.H{"zone": zoneView(zone)})
}

// UpdateDeliveryZone modifies a zone's fee or availability
func UpdateDeliveryZone(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid zone ID", nil)
		return
	}

	var zone models.DeliveryZone
	if err := config.DB.First(&zone, id).Error; err != nil {
		utils.NotFound(c, "Delivery zone not found")
		return
	}

	var req DeliveryZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Fee < 0 {
		utils.BadRequest(c, "Invalid fee", "Fee cannot be negative")
		return
	}

	zone.Fee = req.Fee
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&zone).Error; err != nil {
		utils.LogError("Failed to update delivery zone %d: %v", zone.ID, err)
		utils.InternalServerError(c, "Failed to update delivery zone", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "update", "delivery_zone", zone.ID, fmt.Sprintf("Updated zone %s", zone.Pincode))
	utils.Success(c, "Delivery zone updated successfully", gin.H{"zone": zoneView(zone)})
}

// DeleteDeliveryZone removes a zone; checkout falls back to the default fee
func DeleteDeliveryZone(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid zone ID", nil)
		return
	}

	var zone models.DeliveryZone
	if err := config.DB.First(&zone, id).Error; err != nil {
		utils.NotFound(c, "Delivery zone not found")
		return
	}

	if err := config.DB.Delete(&zone).Error; err != nil {
		utils.LogError("Failed to delete delivery zone %d: %v", zone.ID, err)
		utils.InternalServerError(c, "Failed to delete delivery zone", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "delete", "delivery_zone", zone.ID, fmt.Sprintf("Deleted zone %s", zone.Pincode))
	utils.Success(c, "Delivery zone deleted successfully", nil)
}

// ListDeliveryZones lists all configured zones
func ListDeliveryZones(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var zones []models.DeliveryZone
	if err := config.DB.Order("pincode ASC").Find(&zones).Error; err != nil {
		utils.LogError("Failed to fetch delivery zones: %v", err)
		utils.InternalServerError(c, "Failed to fetch delivery zones", nil)
		return
	}

	views := make([]gin.H, 0, len(zones))
	for _, zone := range zones {
		views = append(views, zoneView(zone))
	}

	utils.Success(c, "Delivery zones retrieved successfully", gin.H{"zones": views})
}
