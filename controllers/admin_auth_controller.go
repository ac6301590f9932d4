package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles admin authentication
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Admin login failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed - Not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !admin.IsActive {
		utils.LogError("Admin login failed - Inactive account: %s", admin.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed - Invalid password: %s", admin.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	admin.LastLogin = time.Now()
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to generate token for admin %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":         admin.ID,
			"email":      admin.Email,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
		},
	})
}

// AdminLogout blacklists the presented admin token
func AdminLogout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		utils.Success(c, "Logged out successfully", nil)
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiresAt = time.Unix(int64(exp), 0)
			}
		}
	}

	entry := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Failed to blacklist admin token: %v", err)
	}

	utils.LogInfo("Admin logged out")
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin seeds the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no admin exists yet.
func CreateSampleAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	config.DB.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.LogError("Failed to hash seed admin password: %v", err)
		return
	}

	admin := models.Admin{
		Email:     email,
		Password:  hash,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.LogError("Failed to seed admin account: %v", err)
		return
	}
	utils.LogInfo("Seeded initial admin account: %s", email)
}
