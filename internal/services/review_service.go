package services

import (
	"context"
	"fmt"
	"strings"

	"bookclubBack/internal/models"
	"bookclubBack/internal/repositories"
)

type ReviewService struct {
	ReviewsRepo *repositories.ReviewRepository
}

func validateReview(review models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}
	if strings.TrimSpace(review.Review) == "" {
		return fmt.Errorf("%w: review text is required", models.ErrValidation)
	}
	if len(review.Review) > 2000 {
		return fmt.Errorf("%w: review text must be at most 2000 characters", models.ErrValidation)
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	if review.ReviewerID <= 0 {
		return models.Review{}, fmt.Errorf("%w: reviewer_id is required", models.ErrValidation)
	}
	if review.BookID <= 0 {
		return models.Review{}, fmt.Errorf("%w: book_id is required", models.ErrValidation)
	}
	if err := validateReview(review); err != nil {
		return models.Review{}, err
	}
	return s.ReviewsRepo.CreateReview(ctx, review)
}

func (s *ReviewService) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	return s.ReviewsRepo.GetReviewByID(ctx, id)
}

func (s *ReviewService) GetReviewsByBookID(ctx context.Context, bookID int) ([]models.Review, error) {
	return s.ReviewsRepo.GetReviewsByBookID(ctx, bookID)
}

func (s *ReviewService) GetReviewsByReviewerID(ctx context.Context, reviewerID int) ([]models.Review, error) {
	return s.ReviewsRepo.GetReviewsByReviewerID(ctx, reviewerID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, review models.Review) error {
	if err := validateReview(review); err != nil {
		return err
	}
	return s.ReviewsRepo.UpdateReview(ctx, review)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int) error {
	return s.ReviewsRepo.DeleteReview(ctx, id)
}
