package service

import (
	"adorder-be/internal/pkg/apperror"
	"adorder-be/pkg/database"
)

func mapUniqueViolation(err error, message string) error {
	if database.IsUniqueViolation(err) {
		return apperror.Conflict(apperror.ReasonDuplicate, message)
	}
	return apperror.Internal(err)
}

func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
