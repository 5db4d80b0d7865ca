package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// PathId reads a numeric path variable. On failure it writes a 400 response and returns false.
func PathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value := mux.Vars(r)[name]
	id, err := strconv.Atoi(value)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid "+name+" format", "Parameter "+name+" must be a number")
		return 0, false
	}
	return id, true
}

// QueryTime reads an RFC3339 query parameter. On failure it writes a 400 response and returns false.
func QueryTime(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	value, err := time.Parse(time.RFC3339, r.URL.Query().Get(name))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Incorrect "+name+" format", name+" must be in RFC3339 format")
		return time.Time{}, false
	}
	return value, true
}
