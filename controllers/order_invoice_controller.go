package controllers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// DownloadInvoice generates and returns a PDF invoice for one of the user's
// orders.
func DownloadInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Product").Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Invoice download failed - Order %d not found for user %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Store header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "SeaMart")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Harbour Road, Fort Kochi, Kerala")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@seamart.in | Phone: +91-98765-43210")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(60, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Payment Method: "+order.PaymentMethod)
	pdf.Cell(60, 8, "Status: "+order.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.CustomerName)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+order.CustomerPhone)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Shipping Address:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(180, 6, order.CustomerAddress, "", "L", false)
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.CellFormat(70, 8, item.Product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, utils.FormatAmount(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, utils.FormatAmount(item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals block
	writeTotal := func(label string, amount int64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 12)
		} else {
			pdf.SetFont("Arial", "", 12)
		}
		pdf.CellFormat(120, 8, "", "", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, utils.FormatAmount(amount), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotal("Subtotal:", order.Subtotal, false)
	if order.DiscountAmount > 0 {
		writeTotal("Discount:", -order.DiscountAmount, false)
	}
	writeTotal("Delivery:", order.DeliveryFee, false)
	writeTotal("Tax:", order.TaxAmount, false)
	writeTotal("Total:", order.TotalAmount, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate invoice PDF for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	utils.LogInfo("Invoice generated for order %d", order.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", order.ID))
	c.Data(200, "application/pdf", buf.Bytes())
}
