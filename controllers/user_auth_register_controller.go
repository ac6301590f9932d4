package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

const otpValidity = 10 * time.Minute

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
}

// RegisterUser handles user registration and sends a verification OTP
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Username = utils.SanitizeString(req.Username)
	req.Email = utils.SanitizeString(req.Email)

	utils.LogInfo("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	if err := utils.ValidateUsername(req.Username); err != nil {
		utils.LogError("Registration failed - Invalid username: %s - %v", req.Username, err)
		utils.BadRequest(c, "Invalid username", err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.LogError("Registration failed - Invalid email: %s - %v", req.Email, err)
		utils.BadRequest(c, "Invalid email", err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.LogError("Registration failed - Weak password for email: %s", req.Email)
		utils.BadRequest(c, "Invalid password", err.Error())
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.LogError("Registration failed - Passwords do not match for email: %s", req.Email)
		utils.BadRequest(c, "Passwords do not match", "Password and confirm password must be the same")
		return
	}
	if req.Phone != "" {
		if err := utils.ValidatePhone(req.Phone); err != nil {
			utils.LogError("Registration failed - Invalid phone: %s - %v", req.Phone, err)
			utils.BadRequest(c, "Invalid phone", err.Error())
			return
		}
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration failed - Account already exists: %s", req.Email)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - Could not hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: utils.SanitizeString(req.FirstName),
		LastName:  utils.SanitizeString(req.LastName),
		Phone:     req.Phone,
	}

	otp := utils.GenerateOTP()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		record := models.UserOTP{
			UserID:    user.ID,
			Code:      otp,
			ExpiresAt: time.Now().Add(otpValidity),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		utils.LogError("Registration failed - Could not create user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	go func(email, code string) {
		if err := utils.SendOTP(email, code); err != nil {
			utils.LogError("Failed to send OTP email to %s: %v", email, err)
		}
	}(user.Email, otp)

	utils.LogInfo("User registered, verification OTP sent: %s", user.Email)
	utils.Created(c, "Registration successful. Please verify your email with the OTP sent.", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// VerifyOTPRequest represents the OTP verification request body
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP confirms the emailed code and activates the account
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("OTP verification failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("OTP verification failed - User not found: %s", req.Email)
		utils.NotFound(c, "Account not found")
		return
	}
	if user.IsVerified {
		utils.Success(c, "Account already verified", nil)
		return
	}

	var record models.UserOTP
	if err := config.DB.Where("user_id = ? AND code = ?", user.ID, req.OTP).
		Order("created_at DESC").First(&record).Error; err != nil {
		utils.LogError("OTP verification failed - Invalid code for user: %s", req.Email)
		utils.BadRequest(c, "Invalid OTP", "The code does not match")
		return
	}
	if time.Now().After(record.ExpiresAt) {
		utils.LogError("OTP verification failed - Expired code for user: %s", req.Email)
		utils.BadRequest(c, "OTP expired", "Please request a new code")
		return
	}

	user.IsVerified = true
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("OTP verification failed - Could not update user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to verify account", nil)
		return
	}
	config.DB.Where("user_id = ?", user.ID).Delete(&models.UserOTP{})

	utils.LogInfo("User verified successfully: %s", req.Email)
	utils.Success(c, "Account verified. You can now log in.", nil)
}

// ResendOTP issues a fresh verification code for an unverified account
func ResendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.NotFound(c, "Account not found")
		return
	}
	if user.IsVerified {
		utils.BadRequest(c, "Account already verified", nil)
		return
	}

	otp := utils.GenerateOTP()
	record := models.UserOTP{
		UserID:    user.ID,
		Code:      otp,
		ExpiresAt: time.Now().Add(otpValidity),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		utils.LogError("Failed to store OTP for user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send OTP", nil)
		return
	}

	go func(email, code string) {
		if err := utils.SendOTP(email, code); err != nil {
			utils.LogError("Failed to send OTP email to %s: %v", email, err)
		}
	}(user.Email, otp)

	utils.LogInfo("Verification OTP resent to: %s", req.Email)
	utils.Success(c, "A new OTP has been sent to your email", nil)
}
