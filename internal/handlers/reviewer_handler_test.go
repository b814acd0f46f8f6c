package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"bookclubBack/internal/repositories"
	"bookclubBack/internal/services"
)

func newReviewerHandler(t *testing.T) (*ReviewerHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	service := &services.ReviewerService{ReviewerRepo: &repositories.ReviewerRepository{DB: db}}
	return &ReviewerHandler{Service: service}, mock
}

func TestUpdateReviewerOtherProfileForbidden(t *testing.T) {
	h, mock := newReviewerHandler(t)

	body := `{"name":"Eve","surname":"Impostor"}`
	req := httptest.NewRequest("PUT", "/reviewer/6?:id=6", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpdateReviewer(rec, asReviewer(req, 5, "reviewer"))

	if rec.Code != 403 {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no queries should run: %v", err)
	}
}

func TestUpdateReviewerOwnProfile(t *testing.T) {
	h, mock := newReviewerHandler(t)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM reviewers WHERE id = \?\)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE reviewers").
		WithArgs("Alice", "Doe", "reads a lot", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"name":"Alice","surname":"Doe","bio":"reads a lot"}`
	req := httptest.NewRequest("PUT", "/reviewer/5?:id=5", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpdateReviewer(rec, asReviewer(req, 5, "reviewer"))

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateReviewerAdminBypassesOwnership(t *testing.T) {
	h, mock := newReviewerHandler(t)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM reviewers WHERE id = \?\)`).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE reviewers").
		WithArgs("Bob", "", "", sqlmock.AnyArg(), 6).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"name":"Bob"}`
	req := httptest.NewRequest("PUT", "/reviewer/6?:id=6", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpdateReviewer(rec, asReviewer(req, 1, "admin"))

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
