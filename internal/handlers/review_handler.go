package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookclubBack/internal/models"
	"bookclubBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	// Reviews are always filed under the authenticated reviewer; the
	// reviewer_id in the body is not trusted. Admins may file on behalf
	// of another reviewer.
	callerID, role := callerIdentity(r)
	if role != "admin" {
		review.ReviewerID = callerID
	}
	review, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrAlreadyReviewed) {
			http.Error(w, "reviewer already reviewed this book", http.StatusConflict)
			return
		}
		if isForeignKeyConstraintError(err) {
			http.Error(w, "reviewer or book does not exist", http.StatusBadRequest)
			return
		}
		log.Printf("CreateReview error: %v", err)
		http.Error(w, "Failed to create review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}

func (h *ReviewHandler) GetReviewsByBookID(w http.ResponseWriter, r *http.Request) {
	bookIDStr := getParam(r, "book_id")
	bookID, err := strconv.Atoi(bookIDStr)
	if err != nil {
		http.Error(w, "Invalid book_id", http.StatusBadRequest)
		return
	}
	reviews, err := h.Service.GetReviewsByBookID(r.Context(), bookID)
	if err != nil {
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}

func (h *ReviewHandler) GetReviewsByReviewerID(w http.ResponseWriter, r *http.Request) {
	reviewerIDStr := getParam(r, "reviewer_id")
	reviewerID, err := strconv.Atoi(reviewerIDStr)
	if err != nil {
		http.Error(w, "Invalid reviewer_id", http.StatusBadRequest)
		return
	}
	reviews, err := h.Service.GetReviewsByReviewerID(r.Context(), reviewerID)
	if err != nil {
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewIDStr := getParam(r, "id")
	reviewID, err := strconv.Atoi(reviewIDStr)
	if err != nil || reviewID == 0 {
		http.Error(w, "Invalid or missing review ID", http.StatusBadRequest)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	existing, err := h.Service.GetReviewByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update review", http.StatusInternalServerError)
		return
	}
	callerID, role := callerIdentity(r)
	if role != "admin" && existing.ReviewerID != callerID {
		http.Error(w, "cannot modify another reviewer's review", http.StatusForbidden)
		return
	}

	review.ID = reviewID
	if err := h.Service.UpdateReview(r.Context(), review); err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrReviewNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update review", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewIDStr := getParam(r, "id")
	reviewID, err := strconv.Atoi(reviewIDStr)
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}
	existing, err := h.Service.GetReviewByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	callerID, role := callerIdentity(r)
	if role != "admin" && existing.ReviewerID != callerID {
		http.Error(w, "cannot delete another reviewer's review", http.StatusForbidden)
		return
	}
	if err := h.Service.DeleteReview(r.Context(), reviewID); err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
