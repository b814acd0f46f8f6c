package models

import (
	"time"
)

type Book struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Description   string     `json:"description,omitempty"`
	PublishedYear int        `json:"published_year"`
	CategoryID    int        `json:"category_id"`
	CoverPath     string     `json:"cover_path,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// BookDetail is the read shape for listings and the detail endpoint.
type BookDetail struct {
	Book
	CategoryName  string  `json:"category_name"`
	ReviewsCount  int     `json:"reviews_count"`
	AverageRating float64 `json:"average_rating"`
}

type BookFilterRequest struct {
	CategoryIDs []int  `json:"category_ids"`
	Search      string `json:"search"`
	YearFrom    int    `json:"year_from"`
	YearTo      int    `json:"year_to"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
}

type BookFilterResponse struct {
	Books []BookDetail `json:"books"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// BookReviewer is one row of GET /book/:id/reviewers.
type BookReviewer struct {
	ReviewerID int       `json:"reviewer_id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname,omitempty"`
	Rating     int       `json:"rating"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
