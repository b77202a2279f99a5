package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Log     Logger
}

func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.GetReviews(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReviewsByPlace(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.GetReviewsByPlace(r.Context(), getParam(r, "place_id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.Service.GetReviewByID(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// CreateReview serves both POST /places/:place_id/reviews and POST /reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.Service.CreateReview(r.Context(), getParam(r, "place_id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.Service.UpdateReview(r.Context(), getParam(r, "id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteReview(r.Context(), getParam(r, "id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}
