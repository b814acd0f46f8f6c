package services

import (
	"context"
	"fmt"
	"strings"

	"bookclubBack/internal/models"
	"bookclubBack/internal/repositories"
)

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
}

func validateCategory(category models.Category) error {
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if len(name) > 100 {
		return fmt.Errorf("%w: name must be at most 100 characters", models.ErrValidation)
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if err := validateCategory(category); err != nil {
		return models.Category{}, err
	}
	category.Name = strings.TrimSpace(category.Name)
	return s.CategoryRepo.CreateCategory(ctx, category)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.CategoryWithCount, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if err := validateCategory(category); err != nil {
		return models.Category{}, err
	}
	category.Name = strings.TrimSpace(category.Name)
	return s.CategoryRepo.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}
