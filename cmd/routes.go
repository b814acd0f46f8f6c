package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("reviewer"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Reviewers
	mux.Post("/reviewer/sign_up", standardMiddleware.ThenFunc(app.reviewerHandler.SignUp))
	mux.Post("/reviewer/sign_in", standardMiddleware.ThenFunc(app.reviewerHandler.SignIn))
	mux.Get("/reviewer", authMiddleware.ThenFunc(app.reviewerHandler.GetReviewers))
	mux.Get("/reviewer/:id/books", authMiddleware.ThenFunc(app.reviewerHandler.GetReviewedBooks))
	mux.Get("/reviewer/:id", authMiddleware.ThenFunc(app.reviewerHandler.GetReviewerByID))
	mux.Put("/reviewer/:id", authMiddleware.ThenFunc(app.reviewerHandler.UpdateReviewer))
	mux.Del("/reviewer/:id", adminAuthMiddleware.ThenFunc(app.reviewerHandler.DeleteReviewer))

	// Books
	mux.Post("/book/filtered", authMiddleware.ThenFunc(app.bookHandler.GetFilteredBooksPost))
	mux.Post("/book/:id/cover", adminAuthMiddleware.ThenFunc(app.bookHandler.UploadBookCover))
	mux.Post("/book", adminAuthMiddleware.ThenFunc(app.bookHandler.CreateBook))
	mux.Get("/book", authMiddleware.ThenFunc(app.bookHandler.GetBooks))
	mux.Get("/book/:id/reviewers", authMiddleware.ThenFunc(app.bookHandler.GetReviewersByBookID))
	mux.Get("/book/:id", authMiddleware.ThenFunc(app.bookHandler.GetBookByID))
	mux.Put("/book/:id", adminAuthMiddleware.ThenFunc(app.bookHandler.UpdateBook))
	mux.Del("/book/:id", adminAuthMiddleware.ThenFunc(app.bookHandler.DeleteBook))

	// Categories
	mux.Post("/category", adminAuthMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/category", authMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/category/:id", authMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/category/:id", adminAuthMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/category/:id", adminAuthMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Reviews
	mux.Post("/review", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/review/book/:book_id", authMiddleware.ThenFunc(app.reviewHandler.GetReviewsByBookID))
	mux.Get("/review/reviewer/:reviewer_id", authMiddleware.ThenFunc(app.reviewHandler.GetReviewsByReviewerID))
	mux.Put("/review/:id", authMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/review/:id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	return standardMiddleware.Then(mux)
}
