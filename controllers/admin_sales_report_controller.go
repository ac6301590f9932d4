package controllers

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

// reportWindow resolves the requested period to a concrete date range
func reportWindow(c *gin.Context) (time.Time, time.Time, string, error) {
	period := c.DefaultQuery("period", "week")
	now := time.Now()

	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now, period, nil
	case "week":
		return now.AddDate(0, 0, -7), now, period, nil
	case "month":
		return now.AddDate(0, -1, 0), now, period, nil
	case "custom":
		start, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		end = end.AddDate(0, 0, 1)
		if end.Before(start) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("to date must not be before from date")
		}
		return start, end, period, nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("period must be day, week, month or custom")
	}
}

type salesSummary struct {
	OrderCount    int64
	TotalSales    int64
	TotalDiscount int64
	TotalTax      int64
	TotalDelivery int64
}

func salesOrders(start, end time.Time) ([]models.Order, salesSummary, error) {
	var orders []models.Order
	err := config.DB.Preload("User").
		Where("created_at >= ? AND created_at < ? AND status != ?", start, end, models.OrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, salesSummary{}, err
	}

	var summary salesSummary
	summary.OrderCount = int64(len(orders))
	for _, order := range orders {
		summary.TotalSales += order.TotalAmount
		summary.TotalDiscount += order.DiscountAmount
		summary.TotalTax += order.TaxAmount
		summary.TotalDelivery += order.DeliveryFee
	}
	return orders, summary, nil
}

// GetSalesReport returns aggregated sales for the requested period
func GetSalesReport(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	start, end, period, err := reportWindow(c)
	if err != nil {
		utils.BadRequest(c, "Invalid report period", err.Error())
		return
	}

	orders, summary, err := salesOrders(start, end)
	if err != nil {
		utils.LogError("Failed to build sales report: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		views = append(views, gin.H{
			"id":       order.ID,
			"date":     order.CreatedAt.Format("2006-01-02 15:04"),
			"customer": order.User.Username,
			"status":   order.Status,
			"discount": utils.FormatAmount(order.DiscountAmount),
			"total":    utils.FormatAmount(order.TotalAmount),
		})
	}

	utils.LogInfo("Sales report generated for period %s: %d orders", period, summary.OrderCount)
	utils.Success(c, "Sales report generated successfully", gin.H{
		"period": period,
		"from":   start.Format("2006-01-02"),
		"to":     end.Format("2006-01-02"),
		"summary": gin.H{
			"order_count":    summary.OrderCount,
			"total_sales":    utils.FormatAmount(summary.TotalSales),
			"total_discount": utils.FormatAmount(summary.TotalDiscount),
			"total_tax":      utils.FormatAmount(summary.TotalTax),
			"total_delivery": utils.FormatAmount(summary.TotalDelivery),
		},
		"orders": views,
	})
}

// ExportSalesReport downloads the sales report for the period as an Excel
// workbook.
func ExportSalesReport(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	start, end, period, err := reportWindow(c)
	if err != nil {
		utils.BadRequest(c, "Invalid report period", err.Error())
		return
	}

	orders, summary, err := salesOrders(start, end)
	if err != nil {
		utils.LogError("Failed to build sales export: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create sales sheet: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", nil)
		return
	}

	row := sheet.AddRow()
	row.AddCell().SetString("SEAMART - Sales Report")
	row = sheet.AddRow()
	row.AddCell().SetString("Period: " + period + " | " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02"))
	sheet.AddRow()

	header := sheet.AddRow()
	for _, title := range []string{"Order ID", "Date", "Customer", "Status", "Subtotal", "Discount", "Delivery", "Tax", "Total"} {
		cell := header.AddCell()
		cell.SetString(title)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(strconv.Itoa(int(order.ID)))
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(order.User.Username)
		row.AddCell().SetString(order.Status)
		row.AddCell().SetString(utils.FormatAmount(order.Subtotal))
		row.AddCell().SetString(utils.FormatAmount(order.DiscountAmount))
		row.AddCell().SetString(utils.FormatAmount(order.DeliveryFee))
		row.AddCell().SetString(utils.FormatAmount(order.TaxAmount))
		row.AddCell().SetString(utils.FormatAmount(order.TotalAmount))
	}

	sheet.AddRow()
	totals := sheet.AddRow()
	totals.AddCell().SetString("Totals")
	totals.AddCell().SetString(fmt.Sprintf("%d orders", summary.OrderCount))
	totals.AddCell()
	totals.AddCell()
	totals.AddCell()
	totals.AddCell().SetString(utils.FormatAmount(summary.TotalDiscount))
	totals.AddCell().SetString(utils.FormatAmount(summary.TotalDelivery))
	totals.AddCell().SetString(utils.FormatAmount(summary.TotalTax))
	totals.AddCell().SetString(utils.FormatAmount(summary.TotalSales))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write sales workbook: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", nil)
		return
	}

	utils.LogInfo("Sales report exported for period %s", period)
	filename := fmt.Sprintf("sales_report_%s_%s.xlsx", period, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
