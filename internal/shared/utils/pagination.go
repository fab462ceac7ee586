package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

// Pagination holds normalized paging parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination clamps page to ≥1 and pageSize to [1, MaxPageSize],
// falling back to defaults for non-positive input.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and limit (or pageSize) from the query string.
func ParsePagination(c *gin.Context) Pagination {
	size := queryInt(c, "limit", 0)
	if size == 0 {
		size = queryInt(c, "pageSize", 0)
	}
	return ValidatePagination(queryInt(c, "page", 0), size)
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// TotalPages is ceil(total/pageSize), at least 1.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
