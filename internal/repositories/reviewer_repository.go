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
	ErrReviewerNotFound = models.ErrReviewerNotFound
)

type ReviewerRepository struct {
	DB *sql.DB
}

func (r *ReviewerRepository) CreateReviewer(ctx context.Context, reviewer models.Reviewer) (models.Reviewer, error) {
	now := time.Now()
	reviewer.CreatedAt = now

	query := `
		INSERT INTO reviewers (name, surname, email, password, bio, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		reviewer.Name, reviewer.Surname, reviewer.Email, reviewer.Password,
		reviewer.Bio, reviewer.Role, reviewer.CreatedAt, reviewer.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Reviewer{}, models.ErrDuplicateEmail
		}
		return models.Reviewer{}, err
	}

	reviewerID, err := result.LastInsertId()
	if err != nil {
		return models.Reviewer{}, err
	}
	reviewer.ID = int(reviewerID)
	reviewer.Password = ""

	return reviewer, nil
}

// GetReviewerByEmail returns the zero value without an error when the email
// is unknown, so callers can branch on an empty Email field.
func (r *ReviewerRepository) GetReviewerByEmail(ctx context.Context, email string) (models.Reviewer, error) {
	var reviewer models.Reviewer

	query := `
		SELECT id, name, surname, email, password, bio, role, created_at, updated_at
		FROM reviewers
		WHERE email = ?
	`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&reviewer.ID, &reviewer.Name, &reviewer.Surname, &reviewer.Email,
		&reviewer.Password, &reviewer.Bio, &reviewer.Role,
		&reviewer.CreatedAt, &reviewer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Reviewer{}, nil
		}
		return models.Reviewer{}, err
	}
	return reviewer, nil
}

func (r *ReviewerRepository) GetReviewerByID(ctx context.Context, id int) (models.ReviewerDetail, error) {
	var reviewer models.ReviewerDetail

	query := `
		SELECT rw.id, rw.name, rw.surname, rw.email, rw.bio, rw.role,
		       rw.created_at, rw.updated_at,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.reviewer_id = rw.id)
		FROM reviewers rw
		WHERE rw.id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&reviewer.ID, &reviewer.Name, &reviewer.Surname, &reviewer.Email,
		&reviewer.Bio, &reviewer.Role,
		&reviewer.CreatedAt, &reviewer.UpdatedAt,
		&reviewer.ReviewsCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ReviewerDetail{}, ErrReviewerNotFound
		}
		return models.ReviewerDetail{}, err
	}
	return reviewer, nil
}

func (r *ReviewerRepository) GetAllReviewers(ctx context.Context) ([]models.ReviewerDetail, error) {
	query := `
        SELECT rw.id, rw.name, rw.surname, rw.email, rw.bio, rw.role,
               rw.created_at, rw.updated_at,
               COUNT(rv.id)
        FROM reviewers rw
        LEFT JOIN reviews rv ON rv.reviewer_id = rw.id
        GROUP BY rw.id, rw.name, rw.surname, rw.email, rw.bio, rw.role,
                 rw.created_at, rw.updated_at
        ORDER BY rw.name
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviewers []models.ReviewerDetail
	for rows.Next() {
		var rw models.ReviewerDetail
		err := rows.Scan(
			&rw.ID, &rw.Name, &rw.Surname, &rw.Email, &rw.Bio, &rw.Role,
			&rw.CreatedAt, &rw.UpdatedAt, &rw.ReviewsCount,
		)
		if err != nil {
			return nil, err
		}
		reviewers = append(reviewers, rw)
	}
	return reviewers, rows.Err()
}

func (r *ReviewerRepository) UpdateReviewer(ctx context.Context, reviewer models.Reviewer) (models.Reviewer, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviewers WHERE id = ?)`, reviewer.ID).Scan(&exists); err != nil {
		return models.Reviewer{}, err
	}
	if !exists {
		return models.Reviewer{}, ErrReviewerNotFound
	}

	query := `
		UPDATE reviewers
		SET name = ?, surname = ?, bio = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := r.DB.ExecContext(ctx, query, reviewer.Name, reviewer.Surname, reviewer.Bio, now, reviewer.ID)
	if err != nil {
		return models.Reviewer{}, err
	}
	reviewer.UpdatedAt = &now
	reviewer.Password = ""

	return reviewer, nil
}

func (r *ReviewerRepository) DeleteReviewer(ctx context.Context, id int) error {
	query := `DELETE FROM reviewers WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReviewerNotFound
	}
	return nil
}

func (r *ReviewerRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (reviewer_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE role = VALUES(role), refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, session.ReviewerID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *ReviewerRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session

	query := `
		SELECT reviewer_id, role, refresh_token, expires_at
		FROM sessions
		WHERE refresh_token = ?
	`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.ReviewerID, &session.Role, &session.RefreshToken, &session.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Session{}, nil
		}
		return models.Session{}, err
	}
	return session, nil
}

// GetReviewedBooksByReviewerID reads the reviewer_books join for one reviewer.
func (r *ReviewerRepository) GetReviewedBooksByReviewerID(ctx context.Context, reviewerID int) ([]models.ReviewedBook, error) {
	query := `
		SELECT rb.book_id, b.title, b.author, c.name, rv.rating, rb.created_at
		FROM reviewer_books rb
		JOIN books b ON b.id = rb.book_id
		JOIN categories c ON c.id = b.category_id
		JOIN reviews rv ON rv.reviewer_id = rb.reviewer_id AND rv.book_id = rb.book_id
		WHERE rb.reviewer_id = ?
		ORDER BY rb.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, reviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.ReviewedBook{}
	for rows.Next() {
		var rb models.ReviewedBook
		if err := rows.Scan(&rb.BookID, &rb.Title, &rb.Author, &rb.CategoryName, &rb.Rating, &rb.ReviewedAt); err != nil {
			return nil, err
		}
		books = append(books, rb)
	}
	return books, rows.Err()
}
