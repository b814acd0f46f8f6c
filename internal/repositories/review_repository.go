package repositories

import (
	"context"
	"database/sql"

	"bookclubBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review and upserts the reviewer_books join row in
// one transaction. One review per reviewer/book pair.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE reviewer_id = ? AND book_id = ?`, rev.ReviewerID, rev.BookID).Scan(&count); err != nil {
		tx.Rollback()
		return models.Review{}, err
	}
	if count > 0 {
		tx.Rollback()
		return models.Review{}, models.ErrAlreadyReviewed
	}

	query := `
		INSERT INTO reviews (reviewer_id, book_id, rating, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`
	result, err := tx.ExecContext(ctx, query, rev.ReviewerID, rev.BookID, rev.Rating, rev.Review)
	if err != nil {
		tx.Rollback()
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return models.Review{}, err
	}
	rev.ID = int(id)

	_, err = tx.ExecContext(ctx, `INSERT IGNORE INTO reviewer_books (reviewer_id, book_id, created_at) VALUES (?, ?, NOW())`, rev.ReviewerID, rev.BookID)
	if err != nil {
		tx.Rollback()
		return models.Review{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}

	return rev, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	var rev models.Review

	query := `
		SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at
		FROM reviews
		WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.ReviewerID, &rev.BookID, &rev.Rating, &rev.Review,
		&rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByBookID(ctx context.Context, bookID int) ([]models.Review, error) {
	query := `
		SELECT rv.id, rv.reviewer_id, rv.book_id, rv.rating, rv.review,
		       rw.name, rw.surname,
		       rv.created_at, rv.updated_at
		FROM reviews rv
		JOIN reviewers rw ON rw.id = rv.reviewer_id
		WHERE rv.book_id = ?
		ORDER BY rv.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.ReviewerID, &rev.BookID, &rev.Rating, &rev.Review,
			&rev.ReviewerName, &rev.ReviewerSurname,
			&rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetReviewsByReviewerID(ctx context.Context, reviewerID int) ([]models.Review, error) {
	query := `
		SELECT rv.id, rv.reviewer_id, rv.book_id, rv.rating, rv.review,
		       b.title,
		       rv.created_at, rv.updated_at
		FROM reviews rv
		JOIN books b ON b.id = rv.book_id
		WHERE rv.reviewer_id = ?
		ORDER BY rv.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, reviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.ReviewerID, &rev.BookID, &rev.Rating, &rev.Review,
			&rev.BookTitle,
			&rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, rev models.Review) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = ?)`, rev.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.ErrReviewNotFound
	}

	query := `
		UPDATE reviews
		SET rating = ?, review = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, rev.Rating, rev.Review, rev.ID)
	return err
}

// DeleteReview removes the review and its reviewer_books row in one
// transaction. Because the pair is unique there is never a second review
// keeping the join row alive.
func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var reviewerID, bookID int
	err = tx.QueryRowContext(ctx, `SELECT reviewer_id, book_id FROM reviews WHERE id = ?`, id).Scan(&reviewerID, &bookID)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return models.ErrReviewNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviewer_books WHERE reviewer_id = ? AND book_id = ?`, reviewerID, bookID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// CountReviewsByReviewerID backs the reviewer detail DTO.
func (r *ReviewRepository) CountReviewsByReviewerID(ctx context.Context, reviewerID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE reviewer_id = ?`, reviewerID).Scan(&count)
	return count, err
}
