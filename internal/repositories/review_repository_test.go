package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"bookclubBack/internal/models"
)

func newReviewRepo(t *testing.T) (*ReviewRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &ReviewRepository{DB: db}, mock
}

func TestCreateReviewMaintainsJoin(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(2, 3, 5, "excellent").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT IGNORE INTO reviewer_books").
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rev, err := repo.CreateReview(context.Background(), models.Review{
		ReviewerID: 2,
		BookID:     3,
		Rating:     5,
		Review:     "excellent",
	})
	if err != nil {
		t.Fatalf("CreateReview returned error: %v", err)
	}
	if rev.ID != 7 {
		t.Errorf("expected review id 7, got %d", rev.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestCreateReviewDuplicatePair(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.CreateReview(context.Background(), models.Review{
		ReviewerID: 2,
		BookID:     3,
		Rating:     4,
		Review:     "again",
	})
	if !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestDeleteReviewRemovesJoinRow(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT reviewer_id, book_id FROM reviews").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"reviewer_id", "book_id"}).AddRow(2, 3))
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM reviewer_books").
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteReview(context.Background(), 7); err != nil {
		t.Fatalf("DeleteReview returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestDeleteReviewNotFound(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT reviewer_id, book_id FROM reviews").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.DeleteReview(context.Background(), 99)
	if !errors.Is(err, models.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestUpdateReviewNotFound(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.UpdateReview(context.Background(), models.Review{ID: 42, Rating: 3, Review: "meh"})
	if !errors.Is(err, models.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
