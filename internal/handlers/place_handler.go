package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type PlaceHandler struct {
	Service *services.PlaceService
	Log     Logger
}

func (h *PlaceHandler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.Service.GetPlaces(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) GetPlacesByCity(w http.ResponseWriter, r *http.Request) {
	places, err := h.Service.GetPlacesByCity(r.Context(), getParam(r, "city_id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	place, err := h.Service.GetPlaceByID(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// CreatePlace serves both POST /cities/:city_id/places and POST /places.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.Service.CreatePlace(r.Context(), getParam(r, "city_id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, place)
}

func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.Service.UpdatePlace(r.Context(), getParam(r, "id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeletePlace(r.Context(), getParam(r, "id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}

func (h *PlaceHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	var q *services.PlaceSearch
	if err := decodeBody(r, &q); err != nil || q == nil {
		writeError(w, http.StatusBadRequest, "Not a JSON")
		return
	}
	places, err := h.Service.SearchPlaces(r.Context(), *q)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) GetPlaceAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.Service.GetPlaceAmenities(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, amenities)
}

// LinkAmenity answers 201 for a new link and 200 when it already existed.
func (h *PlaceHandler) LinkAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, created, err := h.Service.LinkAmenity(r.Context(), getParam(r, "id"), getParam(r, "amenity_id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, amenity)
}

func (h *PlaceHandler) UnlinkAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.UnlinkAmenity(r.Context(), getParam(r, "id"), getParam(r, "amenity_id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}
