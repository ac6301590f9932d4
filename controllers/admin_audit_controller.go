package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// GetAuditLogs lists admin console actions, newest first
func GetAuditLogs(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.AuditLog{}).Order("created_at DESC")
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var logs []models.AuditLog
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&logs).Error; err != nil {
		utils.LogError("Failed to fetch audit logs: %v", err)
		utils.InternalServerError(c, "Failed to fetch audit logs", nil)
		return
	}

	views := make([]gin.H, 0, len(logs))
	for _, entry := range logs {
		views = append(views, gin.H{
			"id":        entry.ID,
			"admin_id":  entry.AdminID,
			"action":    entry.Action,
			"entity":    entry.Entity,
			"entity_id": entry.EntityID,
			"detail":    entry.Detail,
			"ip":        entry.IP,
			"at":        entry.CreatedAt,
		})
	}

	utils.SendPaginatedResponse(c, "Audit logs retrieved successfully", views, pagination)
}
