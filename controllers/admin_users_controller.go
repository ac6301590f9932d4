package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// GetUsers lists customer accounts with search and pagination
func GetUsers(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.User{}).Order("created_at DESC")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if c.Query("blocked") == "true" {
		query = query.Where("is_blocked = ?", true)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var users []models.User
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"phone":       user.Phone,
			"is_blocked":  user.IsBlocked,
			"is_verified": user.IsVerified,
			"created_at":  user.CreatedAt,
			"last_login":  user.LastLoginAt,
		})
	}

	utils.SendPaginatedResponse(c, "Users retrieved successfully", views, pagination)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if user.IsBlocked == blocked {
		utils.Success(c, "User already in requested state", gin.H{"id": user.ID, "is_blocked": user.IsBlocked})
		return
	}

	user.IsBlocked = blocked
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update block flag for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	action := "unblock"
	if blocked {
		action = "block"
	}
	utils.RecordAudit(c, admin.ID, action, "user", user.ID, fmt.Sprintf("%sed user %s", action, user.Email))
	utils.LogInfo("User %s: %s (ID: %d)", action, user.Email, user.ID)
	utils.Success(c, "User updated successfully", gin.H{"id": user.ID, "is_blocked": user.IsBlocked})
}

// BlockUser prevents a customer from logging in or ordering
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser restores a blocked customer account
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}
