package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// CartStorage persists per-user carts. main wires the Redis adapter here;
// tests and broker-less deployments get the in-memory fallback.
var CartStorage cart.Storage = cart.NewMemoryStorage()

// CouponValidator checks coupon codes against the coupons table.
var CouponValidator = &cart.Validator{Source: gormCouponSource{}}

// TaxRatePercent is the checkout tax rate as a whole percentage, set from
// configuration at startup.
var TaxRatePercent int64 = 5

// gormCouponSource looks up coupon rules in Postgres for the validator.
type gormCouponSource struct{}

func (gormCouponSource) FindByCode(ctx context.Context, code string) (*cart.Rule, error) {
	var coupon models.Coupon
	err := config.DB.WithContext(ctx).
		Where("LOWER(code) = LOWER(?)", code).
		First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(err, "failed to look up coupon")
	}
	rule := coupon.Rule()
	return &rule, nil
}

func cartKeyForUser(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// loadCartStore rebuilds the user's cart store from storage. A missing cart
// yields an empty store.
func loadCartStore(ctx context.Context, userID uint) (*cart.Store, error) {
	state, err := CartStorage.Load(ctx, cartKeyForUser(userID))
	if err != nil {
		return nil, err
	}
	if state == nil {
		return cart.NewStore(), nil
	}
	return cart.NewStoreFromState(*state), nil
}

// saveCartStore writes the cart store back to storage.
func saveCartStore(ctx context.Context, userID uint, store *cart.Store) error {
	return CartStorage.Save(ctx, cartKeyForUser(userID), store.Snapshot())
}

// currentUser pulls the authenticated user out of the request context.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// currentAdmin pulls the authenticated admin out of the request context.
func currentAdmin(c *gin.Context) (models.Admin, bool) {
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return models.Admin{}, false
	}
	admin, ok := adminVal.(models.Admin)
	if !ok {
		utils.LogError("Invalid admin type in context")
		utils.InternalServerError(c, "Invalid admin type", nil)
		return models.Admin{}, false
	}
	return admin, true
}

// cartItemView formats a line item for API responses.
func cartItemView(item cart.LineItem) gin.H {
	return gin.H{
		"product_id": item.ProductID,
		"name":       item.Name,
		"unit_price": utils.FormatAmount(item.UnitPrice),
		"quantity":   item.Quantity,
		"image_url":  item.ImageURL,
		"item_total": utils.FormatAmount(item.Total()),
	}
}

// cartView formats the whole cart with derived totals.
func cartView(store *cart.Store) gin.H {
	items := make([]gin.H, 0, store.Len())
	for _, item := range store.Items() {
		items = append(items, cartItemView(item))
	}
	view := gin.H{
		"items":       items,
		"subtotal":    utils.FormatAmount(store.Subtotal()),
		"discount":    utils.FormatAmount(store.Discount()),
		"final_total": utils.FormatAmount(store.FinalTotal()),
	}
	if ref := store.Coupon(); ref != nil {
		view["coupon_code"] = ref.Code
	}
	return view
}
