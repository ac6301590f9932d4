package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination represents pagination parameters
type Pagination struct {
	Page     int
	Limit    int
	Offset   int
	Total    int64
	LastPage int
}

// NewPagination creates a new Pagination instance from query parameters
func NewPagination(c *gin.Context) *Pagination {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// SetTotal sets the total number of items and calculates the last page
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	if p.Limit > 0 {
		p.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
}

// SendPaginatedResponse sends a paginated success response
func SendPaginatedResponse(c *gin.Context, message string, data interface{}, p *Pagination) {
	Success(c, message, gin.H{
		"items": data,
		"pagination": gin.H{
			"total":     p.Total,
			"page":      p.Page,
			"per_page":  p.Limit,
			"last_page": p.LastPage,
		},
	})
}
