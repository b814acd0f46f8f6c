package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type Reviewer struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname,omitempty"`
	Email     string     `json:"email,omitempty"`
	Password  string     `json:"password,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ReviewerDetail is the read shape for GET /reviewer/:id.
type ReviewerDetail struct {
	Reviewer
	ReviewsCount int `json:"reviews_count"`
}

type Claims struct {
	ReviewerID uint   `json:"reviewer_id"`
	Role       string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	ReviewerID   int       `json:"reviewer_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignUpResponse struct {
	ReviewerID   int    `json:"reviewer_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
