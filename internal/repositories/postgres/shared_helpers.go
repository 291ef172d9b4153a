package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// applyPagination applies limit/offset with sane defaults.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

// applySort applies a whitelisted sort column; anything else falls back to
// the default so filter input can never inject SQL.
func applySort(query *gorm.DB, sortBy, sortOrder, defaultSort string, allowed map[string]bool) *gorm.DB {
	order := "asc"
	if strings.EqualFold(sortOrder, "desc") {
		order = "desc"
	}
	if sortBy == "" || !allowed[sortBy] {
		return query.Order(defaultSort)
	}
	return query.Order(fmt.Sprintf("%s %s", sortBy, order))
}
