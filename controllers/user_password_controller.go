package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// ForgotPassword emails a reset OTP to the account's address. The response is
// the same whether or not the account exists.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Forgot password failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogInfo("Forgot password requested for unknown email: %s", req.Email)
		utils.Success(c, "If the account exists, an OTP has been sent", nil)
		return
	}

	otp := utils.GenerateOTP()
	record := models.UserOTP{
		UserID:    user.ID,
		Code:      otp,
		ExpiresAt: time.Now().Add(otpValidity),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		utils.LogError("Failed to store reset OTP for user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send OTP", nil)
		return
	}

	go func(email, code string) {
		if err := utils.SendOTP(email, code); err != nil {
			utils.LogError("Failed to send reset OTP email to %s: %v", email, err)
		}
	}(user.Email, otp)

	utils.LogInfo("Password reset OTP sent to: %s", req.Email)
	utils.Success(c, "If the account exists, an OTP has been sent", nil)
}

// ResetPassword verifies the reset OTP and replaces the password
func ResetPassword(c *gin.Context) {
	var req struct {
		Email           string `json:"email" binding:"required,email"`
		OTP             string `json:"otp" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Password reset failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		utils.BadRequest(c, "Passwords do not match", "New password and confirm password must be the same")
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.BadRequest(c, "Invalid password", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Password reset failed - User not found: %s", req.Email)
		utils.NotFound(c, "Account not found")
		return
	}

	var record models.UserOTP
	if err := config.DB.Where("user_id = ? AND code = ?", user.ID, req.OTP).
		Order("created_at DESC").First(&record).Error; err != nil {
		utils.LogError("Password reset failed - Invalid code for user: %s", req.Email)
		utils.BadRequest(c, "Invalid OTP", "The code does not match")
		return
	}
	if time.Now().After(record.ExpiresAt) {
		utils.LogError("Password reset failed - Expired code for user: %s", req.Email)
		utils.BadRequest(c, "OTP expired", "Please request a new code")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Password reset failed - Could not hash password: %v", err)
		utils.InternalServerError(c, "Failed to reset password", nil)
		return
	}

	user.Password = hash
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Password reset failed - Could not update user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to reset password", nil)
		return
	}
	config.DB.Where("user_id = ?", user.ID).Delete(&models.UserOTP{})

	utils.LogInfo("Password reset successfully for: %s", req.Email)
	utils.Success(c, "Password reset successful. Please log in with your new password.", nil)
}
