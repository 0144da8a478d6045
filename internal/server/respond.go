package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/safarx/places-backend/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps the service error taxonomy to HTTP statuses. Only
// sentinel messages leave the process; wrapped storage detail stays inside.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidAddress):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrPlaceNotFound), errors.Is(err, models.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, models.ErrOperationFailed.Error())
	}
}
