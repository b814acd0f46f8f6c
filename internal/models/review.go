package models

import (
	"time"
)

type Review struct {
	ID         int    `json:"id"`
	ReviewerID int    `json:"reviewer_id"`
	BookID     int    `json:"book_id"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`

	// Joined display fields, filled by the list queries.
	ReviewerName    string `json:"reviewer_name,omitempty"`
	ReviewerSurname string `json:"reviewer_surname,omitempty"`
	BookTitle       string `json:"book_title,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
