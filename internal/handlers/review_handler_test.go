package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"bookclubBack/internal/repositories"
	"bookclubBack/internal/services"
)

func newReviewHandler(t *testing.T) (*ReviewHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	service := &services.ReviewService{ReviewsRepo: &repositories.ReviewRepository{DB: db}}
	return &ReviewHandler{Service: service}, mock
}

// asReviewer stamps the request with the identity the JWT middleware
// would have stored in the context.
func asReviewer(r *http.Request, id int, role string) *http.Request {
	ctx := context.WithValue(r.Context(), "reviewer_id", id)
	ctx = context.WithValue(ctx, "role", role)
	return r.WithContext(ctx)
}

func TestCreateReviewInvalidBody(t *testing.T) {
	h, _ := newReviewHandler(t)

	req := httptest.NewRequest("POST", "/review", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.CreateReview(rec, asReviewer(req, 1, "reviewer"))

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateReviewBadRating(t *testing.T) {
	h, _ := newReviewHandler(t)

	body := `{"book_id":2,"rating":9,"review":"off the scale"}`
	req := httptest.NewRequest("POST", "/review", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateReview(rec, asReviewer(req, 1, "reviewer"))

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateReviewDuplicateConflict(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	body := `{"book_id":2,"rating":4,"review":"second attempt"}`
	req := httptest.NewRequest("POST", "/review", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateReview(rec, asReviewer(req, 1, "reviewer"))

	if rec.Code != 409 {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestCreateReviewIgnoresBodyReviewerID(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(7, 2, 4, "solid read").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT IGNORE INTO reviewer_books").
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `{"reviewer_id":42,"book_id":2,"rating":4,"review":"solid read"}`
	req := httptest.NewRequest("POST", "/review", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateReview(rec, asReviewer(req, 7, "reviewer"))

	if rec.Code != 201 {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetReviewsByBookIDInvalidParam(t *testing.T) {
	h, _ := newReviewHandler(t)

	req := httptest.NewRequest("GET", "/review/book/abc?:book_id=abc", nil)
	rec := httptest.NewRecorder()

	h.GetReviewsByBookID(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateReviewOtherReviewerForbidden(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "book_id", "rating", "review", "created_at", "updated_at"}).
			AddRow(10, 2, 3, 4, "original", time.Now(), nil))

	body := `{"rating":1,"review":"rewritten"}`
	req := httptest.NewRequest("PUT", "/review/10?:id=10", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpdateReview(rec, asReviewer(req, 99, "reviewer"))

	if rec.Code != 403 {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReviewOtherReviewerForbidden(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "book_id", "rating", "review", "created_at", "updated_at"}).
			AddRow(10, 2, 3, 4, "keep me", time.Now(), nil))

	req := httptest.NewRequest("DELETE", "/review/10?:id=10", nil)
	rec := httptest.NewRecorder()

	h.DeleteReview(rec, asReviewer(req, 99, "reviewer"))

	if rec.Code != 403 {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReviewOwnerSucceeds(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "book_id", "rating", "review", "created_at", "updated_at"}).
			AddRow(10, 2, 3, 4, "done with it", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT reviewer_id, book_id FROM reviews").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"reviewer_id", "book_id"}).AddRow(2, 3))
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM reviewer_books").
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/review/10?:id=10", nil)
	rec := httptest.NewRecorder()

	h.DeleteReview(rec, asReviewer(req, 2, "reviewer"))

	if rec.Code != 204 {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReviewAdminBypassesOwnership(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "book_id", "rating", "review", "created_at", "updated_at"}).
			AddRow(10, 2, 3, 1, "spam", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT reviewer_id, book_id FROM reviews").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"reviewer_id", "book_id"}).AddRow(2, 3))
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM reviewer_books").
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/review/10?:id=10", nil)
	rec := httptest.NewRecorder()

	h.DeleteReview(rec, asReviewer(req, 1, "admin"))

	if rec.Code != 204 {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestDeleteReviewMissingReturns404(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT id, reviewer_id, book_id, rating, review, created_at, updated_at").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reviewer_id", "book_id", "rating", "review", "created_at", "updated_at"}))

	req := httptest.NewRequest("DELETE", "/review/55?:id=55", nil)
	rec := httptest.NewRecorder()

	h.DeleteReview(rec, asReviewer(req, 2, "reviewer"))

	if rec.Code != 404 {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
