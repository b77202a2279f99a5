package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type StateHandler struct {
	Service *services.StateService
	Log     Logger
}

func (h *StateHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.Service.GetStates(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *StateHandler) GetStateByID(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.GetStateByID(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *StateHandler) CreateState(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.CreateState(r.Context(), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *StateHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.UpdateState(r.Context(), getParam(r, "id"), decodeAttrs(r))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *StateHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteState(r.Context(), getParam(r, "id")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeDeleted(w)
}
