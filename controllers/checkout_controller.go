package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshtide/seamart/cart"
	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/events"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// checkoutAssembler builds the assembler for a delivery pincode.
func checkoutAssembler(pincode string) cart.Assembler {
	return cart.Assembler{
		DeliveryFee: utils.GetDeliveryFee(pincode),
		TaxRate:     TaxRatePercent,
	}
}

// GetCheckoutSummary returns the cart with delivery fee and tax applied
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

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

	var defaultAddress models.Address
	deliveryAvailable := true
	deliveryError := ""
	pincode := ""
	if err := config.DB.Where("user_id = ? AND is_default = ?", user.ID, true).First(&defaultAddress).Error; err == nil {
		pincode = defaultAddress.PostalCode
	} else {
		deliveryAvailable = false
		deliveryError = "No default address found. Please add a delivery address."
	}

	assembler := checkoutAssembler(pincode)
	totals := assembler.Totals(store)

	items := make([]gin.H, 0, store.Len())
	for _, item := range store.Items() {
		items = append(items, cartItemView(item))
	}

	response := gin.H{
		"can_checkout":     store.Len() > 0 && deliveryAvailable,
		"cart":             items,
		"subtotal":         utils.FormatAmount(totals.Subtotal),
		"discount":         utils.FormatAmount(totals.Discount),
		"discounted_total": utils.FormatAmount(totals.DiscountedTotal),
		"delivery_fee":     utils.FormatAmount(totals.DeliveryFee),
		"tax_amount":       utils.FormatAmount(totals.TaxAmount),
		"total_amount":     utils.FormatAmount(totals.TotalAmount),
	}
	if ref := store.Coupon(); ref != nil {
		response["coupon_code"] = ref.Code
	}
	if deliveryError != "" {
		response["delivery_error"] = deliveryError
	}
	response["delivery_available"] = deliveryAvailable

	utils.Success(c, "Checkout summary retrieved successfully", response)
}

// PlaceOrder submits the cart as an order. The cart is snapshotted before
// submission and stays untouched when anything fails; it is cleared only
// after the order transaction commits.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		AddressID     uint   `json:"address_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if paymentMethod != "cod" && paymentMethod != "online" {
		utils.LogError("Invalid payment method '%s' for user ID: %d", paymentMethod, user.ID)
		utils.BadRequest(c, "Invalid payment method. Must be one of: cod, online", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
		utils.LogError("Address %d not found for user ID: %d", req.AddressID, user.ID)
		utils.NotFound(c, "Address not found")
		return
	}
	if !utils.IsDeliveryAvailable(address.PostalCode) {
		utils.LogError("Delivery not available for pincode %s, user ID: %d", address.PostalCode, user.ID)
		utils.BadRequest(c, "Delivery not available for this address", nil)
		return
	}

	store, err := loadCartStore(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	assembler := checkoutAssembler(address.PostalCode)
	flow := cart.NewCheckout(store, assembler)

	submission, err := flow.Begin(cart.Contact{
		Name:         strings.TrimSpace(user.FirstName + " " + user.LastName),
		Phone:        user.Phone,
		AddressLines: address.Lines(),
	})
	if err != nil {
		utils.LogError("Checkout rejected for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	totals := assembler.Totals(store)
	order, err := createOrder(c, user, address, store, submission, totals, paymentMethod)
	if err != nil {
		flow.Fail(err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Order creation failed for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}

	flow.Confirm()
	if err := CartStorage.Delete(c.Request.Context(), cartKeyForUser(user.ID)); err != nil {
		utils.LogError("Failed to clear cart after order %d: %v", order.ID, err)
	}
	config.DB.Where("user_id = ?", user.ID).Delete(&models.UserActiveCoupon{})

	events.PublishOrderCreated(c.Request.Context(), order)
	go func(email string, orderID uint, total int64) {
		if err := utils.SendOrderConfirmation(email, orderID, total); err != nil {
			utils.LogError("Failed to send order confirmation for order %d: %v", orderID, err)
		}
	}(user.Email, order.ID, order.TotalAmount)

	utils.LogInfo("Placed order %d for user ID: %d, total: %d", order.ID, user.ID, order.TotalAmount)
	response := gin.H{
		"order_id":       order.ID,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"subtotal":       utils.FormatAmount(order.Subtotal),
		"discount":       utils.FormatAmount(order.DiscountAmount),
		"delivery_fee":   utils.FormatAmount(order.DeliveryFee),
		"tax_amount":     utils.FormatAmount(order.TaxAmount),
		"total_amount":   utils.FormatAmount(order.TotalAmount),
	}
	if order.CouponCode != "" {
		response["coupon_code"] = order.CouponCode
	}
	if paymentMethod == "online" {
		response["payment_redirect"] = fmt.Sprintf("/v1/user/payment/initiate?order_id=%d", order.ID)
	}
	utils.Created(c, "Order placed successfully", response)
}

// createOrder runs the order transaction: stock decrement, coupon
// re-validation with an atomic usage-count increment, order and payment rows.
func createOrder(c *gin.Context, user models.User, address models.Address, store *cart.Store, submission *cart.OrderSubmission, totals cart.Totals, paymentMethod string) (*models.Order, error) {
	var order models.Order

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range submission.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, item.ProductID).Error; err != nil {
				return utils.NotFoundError(fmt.Sprintf("Product %d no longer available", item.ProductID), err)
			}
			if product.Stock < item.Quantity {
				return utils.ConflictError(fmt.Sprintf("Not enough stock for %s. Available: %d", product.Name, product.Stock), nil)
			}
			if err := tx.Model(&product).Update("stock", product.Stock-item.Quantity).Error; err != nil {
				return utils.WrapError(err, "failed to update stock")
			}
		}

		var couponID uint
		if ref := store.Coupon(); ref != nil {
			var coupon models.Coupon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("LOWER(code) = LOWER(?)", ref.Code).
				First(&coupon).Error; err != nil {
				return utils.BadRequestError("Applied coupon no longer exists", err)
			}
			rule := coupon.Rule()
			if verr := rule.Check(store.Subtotal(), time.Now()); verr != nil {
				return utils.BadRequestError(verr.Message, verr)
			}
			// Guarded increment so concurrent checkouts cannot exceed the cap
			res := tx.Model(&models.Coupon{}).
				Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", coupon.ID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return utils.WrapError(res.Error, "failed to update coupon usage")
			}
			if res.RowsAffected == 0 {
				return utils.ConflictError("Coupon usage limit reached", nil)
			}
			couponID = coupon.ID
		}

		order = models.Order{
			UserID:          user.ID,
			AddressID:       address.ID,
			CustomerName:    submission.CustomerName,
			CustomerPhone:   submission.CustomerPhone,
			CustomerAddress: submission.CustomerAddress,
			Subtotal:        totals.Subtotal,
			CouponID:        couponID,
			CouponCode:      submission.CouponCode,
			DiscountAmount:  submission.DiscountAmount,
			DeliveryFee:     totals.DeliveryFee,
			TaxAmount:       totals.TaxAmount,
			TotalAmount:     submission.TotalAmount,
			PaymentMethod:   paymentMethod,
			Status:          models.OrderStatusPlaced,
		}
		if err := tx.Create(&order).Error; err != nil {
			return utils.WrapError(err, "failed to create order")
		}

		for _, item := range submission.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Total:     item.Price * int64(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return utils.WrapError(err, "failed to create order item")
			}
		}

		if paymentMethod == "online" {
			payment := models.Payment{
				OrderID: order.ID,
				Amount:  order.TotalAmount,
				Status:  "pending",
			}
			if err := tx.Create(&payment).Error; err != nil {
				return utils.WrapError(err, "failed to create payment record")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
