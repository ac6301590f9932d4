package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// CouponRequest represents the create/update coupon body. Value is a whole
// percentage for PERCENTAGE and an amount in the smallest unit for FIXED.
type CouponRequest struct {
	Code           string     `json:"code" binding:"required"`
	Kind           string     `json:"kind" binding:"required"`
	Value          int64      `json:"value" binding:"required"`
	MinOrderAmount int64      `json:"min_order_amount"`
	ExpiresAt      *time.Time `json:"expires_at"`
	UsageLimit     *int       `json:"usage_limit"`
	Active         *bool      `json:"active"`
}

func (r *CouponRequest) validate() error {
	if err := utils.ValidateCouponValue(r.Kind, r.Value); err != nil {
		return err
	}
	if r.MinOrderAmount < 0 {
		return fmt.Errorf("minimum order amount cannot be negative")
	}
	if r.UsageLimit != nil && *r.UsageLimit < 1 {
		return fmt.Errorf("usage limit must be at least 1")
	}
	return nil
}

func couponAdminView(cp models.Coupon) gin.H {
	view := gin.H{
		"id":               cp.ID,
		"code":             cp.Code,
		"kind":             cp.Kind,
		"value":            cp.Value,
		"min_order_amount": cp.MinOrderAmount,
		"expires_at":       cp.ExpiresAt,
		"usage_limit":      cp.UsageLimit,
		"used_count":       cp.UsedCount,
		"active":           cp.Active,
	}
	if cp.Kind == models.CouponKindFixed {
		view["value_formatted"] = utils.FormatAmount(cp.Value)
	}
	return view
}

// CreateCoupon adds a new discount rule. Codes are stored uppercase.
func CreateCoupon(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Create coupon failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.BadRequest(c, "Invalid coupon", err.Error())
		return
	}

	code := cart.CanonicalCode(req.Code)
	if code == "" {
		utils.BadRequest(c, "Invalid coupon", "Code cannot be empty")
		return
	}

	var existing models.Coupon
	if err := config.DB.Where("LOWER(code) = LOWER(?)", code).First(&existing).Error; err == nil {
		utils.Conflict(c, "A coupon with this code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:           code,
		Kind:           req.Kind,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		Active:         true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon %s: %v", code, err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "create", "coupon", coupon.ID, fmt.Sprintf("Created coupon %s", coupon.Code))
	utils.LogInfo("Coupon created: %s (ID: %d)", coupon.Code, coupon.ID)
	utils.Created(c, "Coupon created successfully", gin.H{"coupon": couponAdminView(coupon)})
}

// UpdateCoupon modifies a discount rule. The code itself is immutable.
func UpdateCoupon(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.BadRequest(c, "Invalid coupon", err.Error())
		return
	}

	coupon.Kind = req.Kind
	coupon.Value = req.Value
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.ExpiresAt = req.ExpiresAt
	coupon.UsageLimit = req.UsageLimit
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := config.DB.Save(&coupon).Error; err != nil {
		utils.LogError("Failed to update coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to update coupon", nil)
		return
	}

	utils.RecordAudit(c, admin.ID, "update", "coupon", coupon.ID, fmt.Sprintf("Updated coupon %s", coupon.Code))
	utils.LogInfo("Coupon updated: %s (ID: %d)", coupon.Code, coupon.ID)
	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": couponAdminView(coupon)})
}

// DeleteCoupon soft-deletes a discount rule. Orders that already used it keep
// their recorded discount.
func DeleteCoupon(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.LogError("Failed to delete coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to delete coupon", nil)
		return
	}
	// Detach the code from carts that still reference it
	config.DB.Where("coupon_id = ?", coupon.ID).Delete(&models.UserActiveCoupon{})

	utils.RecordAudit(c, admin.ID, "delete", "coupon", coupon.ID, fmt.Sprintf("Deleted coupon %s", coupon.Code))
	utils.LogInfo("Coupon deleted: %s (ID: %d)", coupon.Code, coupon.ID)
	utils.Success(c, "Coupon deleted successfully", nil)
}

// GetCoupons lists all coupons for the admin console
func GetCoupons(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Coupon{}).Order("created_at DESC")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var coupons []models.Coupon
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	views := make([]gin.H, 0, len(coupons))
	for _, cp := range coupons {
		views = append(views, couponAdminView(cp))
	}

	utils.SendPaginatedResponse(c, "Coupons retrieved successfully", views, pagination)
}
