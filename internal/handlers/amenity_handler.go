package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type AmenityHandler struct {
	Service *services.AmenityService
	Log     Logger
}

func (h *AmenityHandler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.Service.GetAmenities(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, amenities)
}

func (h *AmenityHandler) GetAmenityByID(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.Service.GetAmenityByID(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}

func (h *AmenityHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.Service.CreateAmenity(r.Context(), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, amenity)
}

func (h *AmenityHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.Service.UpdateAmenity(r.Context(), getParam(r, "id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}

func (h *AmenityHandler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAmenity(r.Context(), getParam(r, "id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}
