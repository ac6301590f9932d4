package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// InitiateRazorpayPayment creates a Razorpay order for an online-payment
// order that is still awaiting payment. Amounts are already in paise.
func InitiateRazorpayPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Payment initiation failed - Invalid request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Payment initiation failed - Order %d not found for user %d", req.OrderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentMethod != "online" {
		utils.BadRequest(c, "This order does not use online payment", nil)
		return
	}

	var payment models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		utils.LogError("Payment initiation failed - No payment record for order %d", order.ID)
		utils.NotFound(c, "Payment record not found")
		return
	}
	if payment.Status == "completed" {
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":   order.TotalAmount,
		"currency": "INR",
		"receipt":  fmt.Sprintf("order_%d", order.ID),
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Razorpay order creation failed for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	payment.RazorpayOrderID = fmt.Sprintf("%v", rzOrder["id"])
	payment.Amount = order.TotalAmount
	payment.Status = "pending"
	if err := config.DB.Save(&payment).Error; err != nil {
		utils.LogError("Failed to update payment record for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	utils.LogInfo("Razorpay order created for order %d: %s", order.ID, payment.RazorpayOrderID)
	utils.Success(c, "Payment initiated", gin.H{
		"razorpay_order_id": payment.RazorpayOrderID,
		"amount":            order.TotalAmount,
		"amount_formatted":  utils.FormatAmount(order.TotalAmount),
		"currency":          "INR",
		"key":               os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyRazorpayPayment checks the gateway signature and marks the payment
// and order accordingly.
func VerifyRazorpayPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Payment verification failed - Invalid request: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&payment).Error; err != nil {
		utils.LogError("Payment verification failed - Unknown Razorpay order: %s", req.RazorpayOrderID)
		utils.NotFound(c, "Payment not found")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", payment.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Payment verification failed - Order %d not found for user %d", payment.OrderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	h := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	h.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		payment.Status = "failed"
		config.DB.Save(&payment)
		utils.LogError("Payment verification failed - Signature mismatch for order %d", order.ID)
		utils.BadRequest(c, "Payment verification failed", "Signature mismatch")
		return
	}

	payment.Status = "completed"
	if err := config.DB.Save(&payment).Error; err != nil {
		utils.LogError("Failed to mark payment completed for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	utils.LogInfo("Payment verified for order %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{
		"order_id": order.ID,
		"status":   payment.Status,
	})
}
