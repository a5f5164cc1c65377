package models

import "strconv"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ParsePagination normalizes raw page/limit query values. Anything invalid or
// out of range falls back to page 1 / DefaultPageLimit.
func ParsePagination(pageParam string, limitParam string) (page int, limit int) {
	page = 1
	if pageParam != "" {
		if n, err := strconv.Atoi(pageParam); err == nil && n >= 1 {
			page = n
		}
	}

	limit = DefaultPageLimit
	if limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
