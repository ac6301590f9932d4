package utils

import (
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
)

// DefaultDeliveryFee is used when no delivery zone covers the pincode, in
// the smallest currency unit. Overridden from config at startup.
var DefaultDeliveryFee int64 = 5000

// GetDeliveryFee returns the flat delivery fee for a pincode
func GetDeliveryFee(pincode string) int64 {
	db := config.DB

	var zone models.DeliveryZone
	if err := db.Where("pincode = ? AND is_active = ?", pincode, true).
		First(&zone).Error; err == nil {
		return zone.Fee
	}

	LogDebug("Pincode %s not in delivery_zones, using default fee", pincode)
	return DefaultDeliveryFee
}

// IsDeliveryAvailable reports whether delivery to a pincode is allowed.
// Unknown pincodes are deliverable at the default fee; a deactivated zone
// blocks its pincode.
func IsDeliveryAvailable(pincode string) bool {
	var zone models.DeliveryZone
	if err := config.DB.Where("pincode = ?", pincode).First(&zone).Error; err != nil {
		return true
	}
	return zone.IsActive
}
