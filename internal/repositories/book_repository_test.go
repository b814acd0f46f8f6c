package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"bookclubBack/internal/models"
)

var bookDetailColumns = []string{
	"id", "title", "author", "description", "published_year",
	"category_id", "cover_path", "created_at", "updated_at",
	"name", "count", "avg",
}

func newBookRepo(t *testing.T) (*BookRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &BookRepository{DB: db}, mock
}

func TestGetBookByIDNotFound(t *testing.T) {
	repo, mock := newBookRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(bookDetailColumns))

	_, err := repo.GetBookByID(context.Background(), 99)
	if !errors.Is(err, models.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestGetBookByIDScansDetail(t *testing.T) {
	repo, mock := newBookRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(bookDetailColumns).
			AddRow(1, "Dune", "Frank Herbert", "spice", 1965, 2, "", time.Now(), nil, "Science Fiction", 3, 4.5))

	book, err := repo.GetBookByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetBookByID returned error: %v", err)
	}
	if book.Title != "Dune" || book.CategoryName != "Science Fiction" {
		t.Errorf("unexpected book: %+v", book)
	}
	if book.ReviewsCount != 3 || book.AverageRating != 4.5 {
		t.Errorf("unexpected aggregates: %+v", book)
	}
}

func TestDeleteBookNotFound(t *testing.T) {
	repo, mock := newBookRepo(t)

	mock.ExpectExec("DELETE FROM books").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBook(context.Background(), 99)
	if !errors.Is(err, models.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestGetFilteredBooksPaging(t *testing.T) {
	repo, mock := newBookRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books`).
		WithArgs("%dune%", "%dune%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs("%dune%", "%dune%", 5, 5).
		WillReturnRows(sqlmock.NewRows(bookDetailColumns).
			AddRow(6, "Dune Messiah", "Frank Herbert", "", 1969, 2, "", time.Now(), nil, "Science Fiction", 1, 3.0))

	resp, err := repo.GetFilteredBooks(context.Background(), models.BookFilterRequest{
		Search: "dune",
		Page:   2,
		Limit:  5,
	})
	if err != nil {
		t.Fatalf("GetFilteredBooks returned error: %v", err)
	}
	if resp.Total != 11 {
		t.Errorf("expected total 11, got %d", resp.Total)
	}
	if len(resp.Books) != 1 || resp.Books[0].Title != "Dune Messiah" {
		t.Errorf("unexpected page content: %+v", resp.Books)
	}
	if resp.Page != 2 || resp.Limit != 5 {
		t.Errorf("unexpected paging echo: %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestGetFilteredBooksDefaultsPaging(t *testing.T) {
	repo, mock := newBookRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(bookDetailColumns))

	resp, err := repo.GetFilteredBooks(context.Background(), models.BookFilterRequest{})
	if err != nil {
		t.Fatalf("GetFilteredBooks returned error: %v", err)
	}
	if resp.Page != 1 || resp.Limit != 10 {
		t.Errorf("expected default paging 1/10, got %d/%d", resp.Page, resp.Limit)
	}
}
