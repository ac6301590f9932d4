package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// ApplyCouponRequest represents the request body for applying a coupon
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// statusForCouponError maps validation codes onto HTTP statuses.
func statusForCouponError(code string) int {
	if code == cart.CodeInvalidCode {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// ApplyCoupon validates a coupon against the current cart subtotal and, on
// success, stores the coupon reference in the cart. Validation has no side
// effects; the usage count moves only when an order is placed.
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Attempting to apply coupon code: %s for user ID: %d", req.Code, user.ID)

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	result, err := CouponValidator.Validate(c.Request.Context(), req.Code, store.Subtotal())
	if err != nil {
		var verr *cart.ValidationError
		if errors.As(err, &verr) {
			utils.LogError("Coupon %s rejected for user ID: %d: %s", req.Code, user.ID, verr.Code)
			utils.ErrorWithCode(c, statusForCouponError(verr.Code), verr.Code, verr.Message)
			return
		}
		utils.LogError("Coupon lookup failed for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to validate coupon", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.Where("LOWER(code) = LOWER(?)", result.Ref.Code).First(&coupon).Error; err != nil {
		utils.LogError("Coupon %s vanished between validation and apply for user ID: %d", result.Ref.Code, user.ID)
		utils.InternalServerError(c, "Failed to apply coupon", nil)
		return
	}

	// One active coupon per user: replace any previous record
	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserActiveCoupon{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear previous active coupons for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear previous active coupons", nil)
		return
	}
	active := models.UserActiveCoupon{
		UserID:    user.ID,
		CouponID:  coupon.ID,
		Code:      coupon.Code,
		AppliedAt: time.Now(),
	}
	if err := tx.Create(&active).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to save active coupon for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save active coupon", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	store.ApplyCoupon(result.Ref)
	if err := saveCartStore(c.Request.Context(), user.ID, store); err != nil {
		utils.LogError("Failed to save cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save cart", nil)
		return
	}

	utils.LogInfo("Applied coupon code: %s for user ID: %d, discount: %d", result.Ref.Code, user.ID, result.Discount)
	utils.Success(c, "Coupon applied successfully", cartView(store))
}

// RemoveCoupon removes the applied coupon from the user's cart
func RemoveCoupon(c *gin.Context) {
	utils.LogInfo("RemoveCoupon called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	store.RemoveCoupon()
	config.DB.Where("user_id = ?", user.ID).Delete(&models.UserActiveCoupon{})

	if err := saveCartStore(c.Request.Context(), user.ID, store); err != nil {
		utils.LogError("Failed to save cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save cart", nil)
		return
	}

	utils.LogInfo("Removed coupon for user ID: %d", user.ID)
	utils.Success(c, "Coupon removed successfully", cartView(store))
}

// ListAvailableCoupons returns coupons a customer can currently use
func ListAvailableCoupons(c *gin.Context) {
	utils.LogInfo("ListAvailableCoupons called")

	var coupons []models.Coupon
	if err := config.DB.Where("active = ?", true).Order("created_at desc").Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	now := time.Now()
	formatted := make([]gin.H, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.IsExpired(now) {
			continue
		}
		if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
			continue
		}
		entry := gin.H{
			"code":      coupon.Code,
			"kind":      coupon.Kind,
			"value":     coupon.Value,
			"min_order": utils.FormatAmount(coupon.MinOrderAmount),
		}
		if coupon.ExpiresAt != nil {
			entry["expires_at"] = coupon.ExpiresAt.Format("2006-01-02")
		}
		formatted = append(formatted, entry)
	}

	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": formatted})
}
