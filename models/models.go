package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer account
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
	GoogleID    string    `gorm:"default:null" json:"google_id"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents an operator of the admin console
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category (shellfish, freshwater, frozen...)
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents a seafood item in the catalog. Price is in the smallest
// currency unit (paise).
type Product struct {
	gorm.Model
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Species     string     `json:"species"`
	Origin      string     `json:"origin"`
	UnitWeight  string     `json:"unit_weight" gorm:"default:'500g'"`
	Price       int64      `json:"price"`
	Stock       int        `json:"stock"`
	CategoryID  uint       `json:"category_id"`
	Category    Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string     `json:"image_url"`
	CatchDate   *time.Time `json:"catch_date"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	IsFeatured  bool       `json:"is_featured" gorm:"default:false"`
	Blocked     bool       `json:"blocked" gorm:"default:false"`
}

// Favorite is a saved product on a customer's list
type Favorite struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"uniqueIndex:idx_favorites_user_product"`
	ProductID uint    `json:"product_id" gorm:"uniqueIndex:idx_favorites_user_product"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
}

// UserOTP represents a one-time password for email verification
type UserOTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Code      string    `json:"code" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlacklistedToken stores JWTs invalidated by logout until they expire
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
