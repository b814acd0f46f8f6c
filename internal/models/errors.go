package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicateCategory  = errors.New("models: duplicate category name")
	ErrBookNotFound       = errors.New("book not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrAlreadyReviewed    = errors.New("reviewer already reviewed this book")
)

// ErrValidation is wrapped by the services when a field-level check fails,
// so handlers can answer 400 without inspecting message text.
var ErrValidation = errors.New("validation failed")
