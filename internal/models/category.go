package models

import (
	"time"
)

type Category struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CategoryWithCount carries the per-category book count for listings.
type CategoryWithCount struct {
	Category
	BooksCount int `json:"books_count"`
}
