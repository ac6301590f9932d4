package models

import (
	"time"
)

// DeliveryZone maps a pincode to a flat delivery fee in the smallest currency
// unit. Checkout falls back to a default fee when no zone matches.
type DeliveryZone struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Pincode   string    `json:"pincode" gorm:"uniqueIndex;not null"`
	Fee       int64     `json:"fee" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
