package config

import (
	"fmt"

	"github.com/freshtide/seamart/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// Auto-migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Favorite{},
		&models.UserOTP{},
		&models.BlacklistedToken{},
		&models.Coupon{},
		&models.UserActiveCoupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Address{},
		&models.DeliveryZone{},
		&models.LandingSection{},
		&models.AuditLog{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
