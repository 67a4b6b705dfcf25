package domain

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrCapacityExceeded = errors.New("capacity limit exceeded")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotFound         = errors.New("not found")
	ErrDecodeFailed     = errors.New("failed to load image")
	ErrEncodeFailed     = errors.New("failed to create optimized image")
	ErrUpstream         = errors.New("upstream operation failed")
	ErrInvalidChannel   = errors.New("invalid channel")
)
