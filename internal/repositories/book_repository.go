package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"bookclubBack/internal/models"
)

var (
	ErrBookNotFound = models.ErrBookNotFound
)

type BookRepository struct {
	DB *sql.DB
}

func (r *BookRepository) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	now := time.Now()
	book.CreatedAt = now

	query := `
		INSERT INTO books (title, author, description, published_year, category_id, cover_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		book.Title, book.Author, book.Description, book.PublishedYear,
		book.CategoryID, book.CoverPath, book.CreatedAt, book.CreatedAt,
	)
	if err != nil {
		return models.Book{}, err
	}

	bookID, err := result.LastInsertId()
	if err != nil {
		return models.Book{}, err
	}
	book.ID = int(bookID)

	return book, nil
}

func (r *BookRepository) GetBookByID(ctx context.Context, id int) (models.BookDetail, error) {
	var book models.BookDetail

	query := `
		SELECT b.id, b.title, b.author, b.description, b.published_year,
		       b.category_id, b.cover_path, b.created_at, b.updated_at,
		       c.name,
		       COUNT(rv.id), COALESCE(AVG(rv.rating), 0)
		FROM books b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN reviews rv ON rv.book_id = b.id
		WHERE b.id = ?
		GROUP BY b.id, b.title, b.author, b.description, b.published_year,
		         b.category_id, b.cover_path, b.created_at, b.updated_at, c.name
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.PublishedYear,
		&book.CategoryID,
		&book.CoverPath,
		&book.CreatedAt,
		&book.UpdatedAt,
		&book.CategoryName,
		&book.ReviewsCount,
		&book.AverageRating,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.BookDetail{}, ErrBookNotFound
		}
		return models.BookDetail{}, err
	}

	return book, nil
}

func (r *BookRepository) GetAllBooks(ctx context.Context) ([]models.BookDetail, error) {
	query := `
        SELECT b.id, b.title, b.author, b.description, b.published_year,
               b.category_id, b.cover_path, b.created_at, b.updated_at,
               c.name,
               COUNT(rv.id), COALESCE(AVG(rv.rating), 0)
        FROM books b
        JOIN categories c ON c.id = b.category_id
        LEFT JOIN reviews rv ON rv.book_id = b.id
        GROUP BY b.id, b.title, b.author, b.description, b.published_year,
                 b.category_id, b.cover_path, b.created_at, b.updated_at, c.name
        ORDER BY b.title
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.BookDetail
	for rows.Next() {
		var b models.BookDetail
		err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.PublishedYear,
			&b.CategoryID, &b.CoverPath, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryName, &b.ReviewsCount, &b.AverageRating,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// GetFilteredBooks builds the listing query from the optional filters and
// returns one page plus the unpaged total.
func (r *BookRepository) GetFilteredBooks(ctx context.Context, filter models.BookFilterRequest) (models.BookFilterResponse, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if len(filter.CategoryIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.CategoryIDs)), ",")
		where = append(where, "b.category_id IN ("+placeholders+")")
		for _, id := range filter.CategoryIDs {
			args = append(args, id)
		}
	}
	if filter.Search != "" {
		where = append(where, "(b.title LIKE ? OR b.author LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.YearFrom > 0 {
		where = append(where, "b.published_year >= ?")
		args = append(args, filter.YearFrom)
	}
	if filter.YearTo > 0 {
		where = append(where, "b.published_year <= ?")
		args = append(args, filter.YearTo)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM books b WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.BookFilterResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	offset := (filter.Page - 1) * filter.Limit

	query := `
		SELECT b.id, b.title, b.author, b.description, b.published_year,
		       b.category_id, b.cover_path, b.created_at, b.updated_at,
		       c.name,
		       COUNT(rv.id), COALESCE(AVG(rv.rating), 0)
		FROM books b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN reviews rv ON rv.book_id = b.id
		WHERE ` + whereClause + `
		GROUP BY b.id, b.title, b.author, b.description, b.published_year,
		         b.category_id, b.cover_path, b.created_at, b.updated_at, c.name
		ORDER BY b.title
		LIMIT ? OFFSET ?
	`
	args = append(args, filter.Limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return models.BookFilterResponse{}, err
	}
	defer rows.Close()

	books := []models.BookDetail{}
	for rows.Next() {
		var b models.BookDetail
		err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.PublishedYear,
			&b.CategoryID, &b.CoverPath, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryName, &b.ReviewsCount, &b.AverageRating,
		)
		if err != nil {
			return models.BookFilterResponse{}, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return models.BookFilterResponse{}, err
	}

	return models.BookFilterResponse{
		Books: books,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (r *BookRepository) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)`, book.ID).Scan(&exists); err != nil {
		return models.Book{}, err
	}
	if !exists {
		return models.Book{}, ErrBookNotFound
	}

	query := `
		UPDATE books
		SET title = ?, author = ?, description = ?, published_year = ?, category_id = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := r.DB.ExecContext(ctx, query,
		book.Title, book.Author, book.Description, book.PublishedYear,
		book.CategoryID, now, book.ID,
	)
	if err != nil {
		return models.Book{}, err
	}
	book.UpdatedAt = &now

	return book, nil
}

func (r *BookRepository) UpdateCoverPath(ctx context.Context, id int, coverPath string) error {
	query := `UPDATE books SET cover_path = ?, updated_at = ? WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, coverPath, time.Now(), id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, id int) error {
	query := `DELETE FROM books WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// GetReviewersByBookID reads the reviewer_books join for one book.
func (r *BookRepository) GetReviewersByBookID(ctx context.Context, bookID int) ([]models.BookReviewer, error) {
	query := `
		SELECT rb.reviewer_id, rw.name, rw.surname, rv.rating, rb.created_at
		FROM reviewer_books rb
		JOIN reviewers rw ON rw.id = rb.reviewer_id
		JOIN reviews rv ON rv.reviewer_id = rb.reviewer_id AND rv.book_id = rb.book_id
		WHERE rb.book_id = ?
		ORDER BY rb.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviewers := []models.BookReviewer{}
	for rows.Next() {
		var br models.BookReviewer
		if err := rows.Scan(&br.ReviewerID, &br.Name, &br.Surname, &br.Rating, &br.ReviewedAt); err != nil {
			return nil, err
		}
		reviewers = append(reviewers, br)
	}
	return reviewers, rows.Err()
}
