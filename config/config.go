package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	RedisAddress  string
	RedisPassword string

	KafkaBrokers string
	KafkaTopic   string

	// DefaultDeliveryFee and TaxRatePercent feed the checkout assembler.
	// Fee is in the smallest currency unit, the tax rate a whole percentage.
	DefaultDeliveryFee int64
	TaxRatePercent     int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		RedisAddress:       os.Getenv("REDIS_ADDRESS"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:         os.Getenv("KAFKA_TOPIC"),
		DefaultDeliveryFee: envInt64("DEFAULT_DELIVERY_FEE", 5000),
		TaxRatePercent:     envInt64("TAX_RATE_PERCENT", 5),
	}

	return config, nil
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
