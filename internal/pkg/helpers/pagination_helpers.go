package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models/dto"
)

// Paging limits of the admin user list
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// keeps OFFSET far below the bigint range
	MaxPage = 100000
)

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit turns a 1-based page into OFFSET and LIMIT values
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = normalizePage(page, size)
	return uint64(page-1) * uint64(limit), limit
}

// NewPaginationInfo describes one page of totalItems. An empty listing still
// has one page, and a page past the end is clamped to the last one.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page= and ?size=. Missing or out of range
// values fall back to the defaults.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("size"))
	return normalizePage(page, size)
}
