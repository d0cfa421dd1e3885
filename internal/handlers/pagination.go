package handlers

import (
	"fmt"
	"math"
	"strconv"
)

// parsePaginationParams enforces the list contract: page and limit default to
// 1 and 10 and must both be positive integers when supplied.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(10)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("Page and limit must be positive integers")
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, fmt.Errorf("Page and limit must be positive integers")
		}
		limit = l
	}

	return page, limit, nil
}

func totalPages(total, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}
