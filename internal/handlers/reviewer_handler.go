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

type ReviewerHandler struct {
	Service *services.ReviewerService
}

func (h *ReviewerHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var reviewer models.Reviewer
	if err := json.NewDecoder(r.Body).Decode(&reviewer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// Roles are assigned server-side; sign up never grants admin.
	reviewer.Role = "reviewer"

	resp, err := h.Service.SignUp(r.Context(), reviewer)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		log.Printf("SignUp error: %v", err)
		http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *ReviewerHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Printf("SignIn error: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(tokens)
}

func (h *ReviewerHandler) GetReviewers(w http.ResponseWriter, r *http.Request) {
	reviewers, err := h.Service.GetAllReviewers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviewers)
}

func (h *ReviewerHandler) GetReviewerByID(w http.ResponseWriter, r *http.Request) {
	idStr := getParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid reviewer ID", http.StatusBadRequest)
		return
	}

	reviewer, err := h.Service.GetReviewerByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrReviewerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(reviewer)
}

func (h *ReviewerHandler) UpdateReviewer(w http.ResponseWriter, r *http.Request) {
	idStr := getParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id == 0 {
		http.Error(w, "Invalid or missing reviewer ID", http.StatusBadRequest)
		return
	}

	callerID, role := callerIdentity(r)
	if role != "admin" && callerID != id {
		http.Error(w, "cannot modify another reviewer's profile", http.StatusForbidden)
		return
	}

	var reviewer models.Reviewer
	if err := json.NewDecoder(r.Body).Decode(&reviewer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	reviewer.ID = id

	updated, err := h.Service.UpdateReviewer(r.Context(), reviewer)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrReviewerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update reviewer", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(updated)
}

func (h *ReviewerHandler) DeleteReviewer(w http.ResponseWriter, r *http.Request) {
	idStr := getParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid reviewer ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteReviewer(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrReviewerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if isForeignKeyConstraintError(err) {
			http.Error(w, "reviewer still has reviews", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to delete reviewer", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewerHandler) GetReviewedBooks(w http.ResponseWriter, r *http.Request) {
	idStr := getParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid reviewer ID", http.StatusBadRequest)
		return
	}

	books, err := h.Service.GetReviewedBooks(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to get reviewed books", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(books)
}
