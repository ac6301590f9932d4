package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/controllers"
	"github.com/freshtide/seamart/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Session store backs the OAuth state handshake
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "seamart-dev-session"
	}
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24,
		Path:     "/",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("seamart", store))

	// OAuth routes
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
