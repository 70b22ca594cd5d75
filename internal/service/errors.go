package service

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryMissing   = errors.New("referenced category does not exist")
	ErrProductHasSales   = errors.New("product has sales records and cannot be deleted")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
)
