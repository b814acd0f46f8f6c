package models

import (
	"time"
)

// ReviewerBook is a row of the reviewer_books join table. Rows are
// maintained by the review repository inside the review write transactions.
type ReviewerBook struct {
	ReviewerID int       `json:"reviewer_id"`
	BookID     int       `json:"book_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewedBook is one row of GET /reviewer/:id/books.
type ReviewedBook struct {
	BookID       int       `json:"book_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	CategoryName string    `json:"category_name"`
	Rating       int       `json:"rating"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}
