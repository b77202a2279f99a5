package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/services"
)

// Logger receives failures that end in a 500.
type Logger interface {
	Errorf(format string, args ...interface{})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes exactly one JSON value from the body; anything after
// it other than whitespace is an error.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// decodeAttrs returns nil when the body is not a JSON object; services
// report that as models.ErrNotJSON once any path lookups have passed.
func decodeAttrs(r *http.Request) services.Attrs {
	var attrs services.Attrs
	if err := decodeBody(r, &attrs); err != nil {
		return nil
	}
	return attrs
}

func respondError(w http.ResponseWriter, log Logger, err error) {
	var fe *models.FieldError
	switch {
	case errors.Is(err, models.ErrNoRecord):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrNotJSON):
		writeError(w, http.StatusBadRequest, "Not a JSON")
	case errors.As(err, &fe) && errors.Is(fe.Err, models.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Missing "+fe.Field)
	case errors.As(err, &fe):
		writeError(w, http.StatusBadRequest, "Invalid "+fe.Field)
	default:
		if log != nil {
			log.Errorf("%s", err.Error())
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeDeleted(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, struct{}{})
}
