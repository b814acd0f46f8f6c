package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"bookclubBack/internal/models"
)

var (
	ErrCategoryNotFound = models.ErrCategoryNotFound
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	now := time.Now()
	category.CreatedAt = now

	query := `
		INSERT INTO categories (name, created_at, updated_at)
		VALUES (?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query, category.Name, category.CreatedAt, category.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Category{}, models.ErrDuplicateCategory
		}
		return models.Category{}, err
	}

	categoryID, err := result.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	category.ID = int(categoryID)

	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.CategoryWithCount, error) {
	var category models.CategoryWithCount

	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM books b WHERE b.category_id = c.id)
		FROM categories c
		WHERE c.id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.BooksCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CategoryWithCount{}, ErrCategoryNotFound
		}
		return models.CategoryWithCount{}, err
	}

	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`, category.ID).Scan(&exists); err != nil {
		return models.Category{}, err
	}
	if !exists {
		return models.Category{}, ErrCategoryNotFound
	}

	query := `
		UPDATE categories
		SET name = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := r.DB.ExecContext(ctx, query, category.Name, now, category.ID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Category{}, models.ErrDuplicateCategory
		}
		return models.Category{}, err
	}
	category.UpdatedAt = &now

	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	query := `DELETE FROM categories WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	query := `
        SELECT c.id, c.name, c.created_at, c.updated_at, COUNT(b.id)
        FROM categories c
        LEFT JOIN books b ON b.category_id = c.id
        GROUP BY c.id, c.name, c.created_at, c.updated_at
        ORDER BY c.name
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.CategoryWithCount
	for rows.Next() {
		var c models.CategoryWithCount
		err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.BooksCount)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
