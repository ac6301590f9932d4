package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
)

// RecordAudit writes an admin action to the audit log. Failures are logged
// and swallowed so auditing never blocks the action itself.
func RecordAudit(c *gin.Context, adminID uint, action, entity string, entityID uint, detail string) {
	entry := models.AuditLog{
		AdminID:  adminID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
		IP:       c.ClientIP(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		LogError("Failed to record audit entry for admin %d: %v", adminID, err)
	}
}
