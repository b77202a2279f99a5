package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type CityHandler struct {
	Service *services.CityService
	Log     Logger
}

func (h *CityHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.GetCities(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *CityHandler) GetCitiesByState(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.GetCitiesByState(r.Context(), getParam(r, "state_id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *CityHandler) GetCityByID(w http.ResponseWriter, r *http.Request) {
	city, err := h.Service.GetCityByID(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

// CreateCity serves both POST /states/:state_id/cities and POST /cities.
func (h *CityHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.Service.CreateCity(r.Context(), getParam(r, "state_id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, city)
}

func (h *CityHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.Service.UpdateCity(r.Context(), getParam(r, "id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (h *CityHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCity(r.Context(), getParam(r, "id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}
