package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookclubBack/internal/models"
	"bookclubBack/internal/repositories"
)

type BookService struct {
	BookRepo *repositories.BookRepository
}

func validateBook(book models.Book) error {
	if strings.TrimSpace(book.Title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if len(book.Title) > 200 {
		return fmt.Errorf("%w: title must be at most 200 characters", models.ErrValidation)
	}
	if strings.TrimSpace(book.Author) == "" {
		return fmt.Errorf("%w: author is required", models.ErrValidation)
	}
	if len(book.Author) > 120 {
		return fmt.Errorf("%w: author must be at most 120 characters", models.ErrValidation)
	}
	if len(book.Description) > 2000 {
		return fmt.Errorf("%w: description must be at most 2000 characters", models.ErrValidation)
	}
	if book.PublishedYear != 0 && (book.PublishedYear < 1000 || book.PublishedYear > time.Now().Year()+1) {
		return fmt.Errorf("%w: published_year is out of range", models.ErrValidation)
	}
	if book.CategoryID <= 0 {
		return fmt.Errorf("%w: category_id is required", models.ErrValidation)
	}
	return nil
}

func (s *BookService) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if err := validateBook(book); err != nil {
		return models.Book{}, err
	}
	return s.BookRepo.CreateBook(ctx, book)
}

func (s *BookService) GetBookByID(ctx context.Context, id int) (models.BookDetail, error) {
	return s.BookRepo.GetBookByID(ctx, id)
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]models.BookDetail, error) {
	return s.BookRepo.GetAllBooks(ctx)
}

func (s *BookService) GetFilteredBooks(ctx context.Context, filter models.BookFilterRequest) (models.BookFilterResponse, error) {
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.BookRepo.GetFilteredBooks(ctx, filter)
}

func (s *BookService) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if err := validateBook(book); err != nil {
		return models.Book{}, err
	}
	return s.BookRepo.UpdateBook(ctx, book)
}

func (s *BookService) UpdateCoverPath(ctx context.Context, id int, coverPath string) error {
	return s.BookRepo.UpdateCoverPath(ctx, id, coverPath)
}

func (s *BookService) DeleteBook(ctx context.Context, id int) error {
	return s.BookRepo.DeleteBook(ctx, id)
}

func (s *BookService) GetReviewersByBookID(ctx context.Context, bookID int) ([]models.BookReviewer, error) {
	return s.BookRepo.GetReviewersByBookID(ctx, bookID)
}
