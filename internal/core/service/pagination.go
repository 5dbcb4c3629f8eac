package service

import "github.com/telegram-clone/admin-api/internal/core/ports"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func paginate(page, limit int, total int64) ports.Pagination {
	pages := int(total / int64(limit))
	if total%int64(limit) != 0 {
		pages++
	}
	return ports.Pagination{
		Current:    page,
		Total:      pages,
		PageSize:   limit,
		TotalItems: total,
	}
}
