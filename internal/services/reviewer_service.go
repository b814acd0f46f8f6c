package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"bookclubBack/internal/models"
	"bookclubBack/internal/repositories"
	"bookclubBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type ReviewerService struct {
	ReviewerRepo *repositories.ReviewerRepository
	ReviewsRepo  *repositories.ReviewRepository
	TokenManager *utils.Manager
	SigningKey   string
}

func validateReviewer(reviewer models.Reviewer) error {
	if strings.TrimSpace(reviewer.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if len(reviewer.Name) > 120 {
		return fmt.Errorf("%w: name must be at most 120 characters", models.ErrValidation)
	}
	if len(reviewer.Surname) > 120 {
		return fmt.Errorf("%w: surname must be at most 120 characters", models.ErrValidation)
	}
	if len(reviewer.Bio) > 1000 {
		return fmt.Errorf("%w: bio must be at most 1000 characters", models.ErrValidation)
	}
	return nil
}

func (s *ReviewerService) SignUp(ctx context.Context, reviewer models.Reviewer) (models.SignUpResponse, error) {
	if err := validateReviewer(reviewer); err != nil {
		return models.SignUpResponse{}, err
	}
	if !emailRegexp.MatchString(reviewer.Email) {
		return models.SignUpResponse{}, fmt.Errorf("%w: email format is invalid", models.ErrValidation)
	}
	if len(reviewer.Password) < 8 {
		return models.SignUpResponse{}, fmt.Errorf("%w: password must be at least 8 characters", models.ErrValidation)
	}

	existing, err := s.ReviewerRepo.GetReviewerByEmail(ctx, reviewer.Email)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	if existing.Email != "" {
		return models.SignUpResponse{}, models.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reviewer.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	reviewer.Password = string(hashedPassword)
	if reviewer.Role == "" {
		reviewer.Role = "reviewer"
	}

	created, err := s.ReviewerRepo.CreateReviewer(ctx, reviewer)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	tokens, err := s.issueTokens(ctx, created.ID, created.Role)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	return models.SignUpResponse{
		ReviewerID:   created.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *ReviewerService) SignIn(ctx context.Context, email, password string) (models.Tokens, error) {
	reviewer, err := s.ReviewerRepo.GetReviewerByEmail(ctx, email)
	if err != nil {
		return models.Tokens{}, err
	}
	if reviewer.Email == "" {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reviewer.Password), []byte(password)); err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, reviewer.ID, reviewer.Role)
}

func (s *ReviewerService) issueTokens(ctx context.Context, reviewerID int, role string) (models.Tokens, error) {
	claims := &models.Claims{
		ReviewerID: uint(reviewerID),
		Role:       role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	session := models.Session{
		ReviewerID:   reviewerID,
		Role:         role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.ReviewerRepo.CreateSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *ReviewerService) GetReviewerByID(ctx context.Context, id int) (models.ReviewerDetail, error) {
	return s.ReviewerRepo.GetReviewerByID(ctx, id)
}

func (s *ReviewerService) GetAllReviewers(ctx context.Context) ([]models.ReviewerDetail, error) {
	return s.ReviewerRepo.GetAllReviewers(ctx)
}

func (s *ReviewerService) UpdateReviewer(ctx context.Context, reviewer models.Reviewer) (models.Reviewer, error) {
	if err := validateReviewer(reviewer); err != nil {
		return models.Reviewer{}, err
	}
	return s.ReviewerRepo.UpdateReviewer(ctx, reviewer)
}

func (s *ReviewerService) DeleteReviewer(ctx context.Context, id int) error {
	return s.ReviewerRepo.DeleteReviewer(ctx, id)
}

func (s *ReviewerService) GetReviewedBooks(ctx context.Context, reviewerID int) ([]models.ReviewedBook, error) {
	return s.ReviewerRepo.GetReviewedBooksByReviewerID(ctx, reviewerID)
}
