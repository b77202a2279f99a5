package handlers

import (
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

type IndexHandler struct {
	Service *services.StatsService
	Log     Logger
}

func (h *IndexHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *IndexHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// NotFound answers unmatched routes with the JSON 404 body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
