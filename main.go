package main

import (
	"log"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/controllers"
	"github.com/freshtide/seamart/events"
	"github.com/freshtide/seamart/routes"
	"github.com/freshtide/seamart/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	config.InitDB()

	// Redis-backed carts when configured, in-memory otherwise
	if config.InitRedis() {
		controllers.CartStorage = cart.NewRedisStorage(config.Redis)
		utils.LogInfo("Cart storage: redis at %s", cfg.RedisAddress)
	} else {
		utils.LogInfo("Cart storage: in-memory")
	}

	controllers.TaxRatePercent = cfg.TaxRatePercent
	utils.DefaultDeliveryFee = cfg.DefaultDeliveryFee

	events.Init(cfg.KafkaBrokers, cfg.KafkaTopic)
	if events.Default != nil {
		defer events.Default.Close()
		utils.LogInfo("Order events publishing to Kafka topic %s", cfg.KafkaTopic)
	}

	controllers.CreateSampleAdmin()
	config.InitGoogleOAuth()

	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
