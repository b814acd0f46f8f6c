package main

import (
	"database/sql"
	"log"
	"net/http"

	"bookclubBack/internal/config"
	"bookclubBack/internal/handlers"
	"bookclubBack/internal/repositories"
	"bookclubBack/internal/services"
	"bookclubBack/utils"
)

type application struct {
	errorLog        *log.Logger
	infoLog         *log.Logger
	signingKey      string
	bookHandler     *handlers.BookHandler
	bookRepo        *repositories.BookRepository
	categoryHandler *handlers.CategoryHandler
	categoryRepo    *repositories.CategoryRepository
	reviewerHandler *handlers.ReviewerHandler
	reviewerRepo    *repositories.ReviewerRepository
	reviewHandler   *handlers.ReviewHandler
	reviewRepo      *repositories.ReviewRepository
	db              *sql.DB
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	bookRepo := repositories.BookRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	reviewerRepo := repositories.ReviewerRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	storage := &utils.Storage{
		Bucket:   cfg.Storage.Bucket,
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
	}

	// Services
	bookService := &services.BookService{BookRepo: &bookRepo}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo}
	reviewerService := &services.ReviewerService{
		ReviewerRepo: &reviewerRepo,
		ReviewsRepo:  &reviewRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.Auth.SigningKey,
	}
	reviewService := &services.ReviewService{ReviewsRepo: &reviewRepo}

	// Handlers
	bookHandler := &handlers.BookHandler{Service: bookService, Storage: storage}
	categoryHandler := &handlers.CategoryHandler{Service: categoryService}
	reviewerHandler := &handlers.ReviewerHandler{Service: reviewerService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		signingKey:      cfg.Auth.SigningKey,
		bookHandler:     bookHandler,
		bookRepo:        &bookRepo,
		categoryHandler: categoryHandler,
		categoryRepo:    &categoryRepo,
		reviewerHandler: reviewerHandler,
		reviewerRepo:    &reviewerRepo,
		reviewHandler:   reviewHandler,
		reviewRepo:      &reviewRepo,
		db:              db,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
