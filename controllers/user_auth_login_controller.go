package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Login failed - Blocked account: %s", req.Email)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	if !user.IsVerified {
		utils.LogError("Login failed - Unverified account: %s", req.Email)
		utils.Forbidden(c, "Please verify your email before logging in")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Logout blacklists the presented token until its natural expiry
func Logout(c *gin.Context) {
	raw, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "No active session")
		return
	}
	token, _ := raw.(string)

	entry := models.BlacklistedToken{
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Logout failed - Could not blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to log out", nil)
		return
	}

	utils.LogInfo("User logged out")
	utils.Success(c, "Logged out successfully", nil)
}
