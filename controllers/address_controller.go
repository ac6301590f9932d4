package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// AddressRequest represents the create/update address body
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (r *AddressRequest) sanitize() {
	r.Line1 = utils.SanitizeString(r.Line1)
	r.Line2 = utils.SanitizeString(r.Line2)
	r.City = utils.SanitizeString(r.City)
	r.State = utils.SanitizeString(r.State)
	r.Country = utils.SanitizeString(r.Country)
	r.PostalCode = utils.SanitizeString(r.PostalCode)
}

// AddAddress creates a new address for the user. The first address becomes
// the default automatically.
func AddAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	req.sanitize()
	if err := utils.ValidatePincode(req.PostalCode); err != nil {
		utils.BadRequest(c, "Invalid postal code", err.Error())
		return
	}

	var count int64
	config.DB.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count)

	address := models.Address{
		UserID:     user.ID,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault || count == 0,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		utils.LogError("Failed to create address for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save address", nil)
		return
	}

	utils.LogInfo("Address created for user %d (ID: %d)", user.ID, address.ID)
	utils.Created(c, "Address added successfully", gin.H{"address": address})
}

// ListAddresses returns the user's addresses, default first
func ListAddresses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}

	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// UpdateAddress modifies one of the user's addresses
func UpdateAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	req.sanitize()
	if err := utils.ValidatePincode(req.PostalCode); err != nil {
		utils.BadRequest(c, "Invalid postal code", err.Error())
		return
	}

	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.Country = req.Country
	address.PostalCode = req.PostalCode

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			address.IsDefault = true
		}
		return tx.Save(&address).Error
	})
	if err != nil {
		utils.LogError("Failed to update address %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}

	utils.Success(c, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress removes one of the user's addresses. Deleting the default
// promotes the most recent remaining address.
func DeleteAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&address).Error; err != nil {
			return err
		}
		if address.IsDefault {
			var next models.Address
			if err := tx.Where("user_id = ?", user.ID).Order("created_at DESC").First(&next).Error; err == nil {
				next.IsDefault = true
				return tx.Save(&next).Error
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to delete address %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}

// SetDefaultAddress marks one address as the delivery default
func SetDefaultAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		utils.LogError("Failed to set default address %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to set default address", nil)
		return
	}

	utils.Success(c, "Default address updated", gin.H{"id": address.ID})
}
