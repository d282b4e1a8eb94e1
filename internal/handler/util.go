package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/pkg/logger"
)

// maxBodyBytes bounds request bodies. A full intake transcript fits easily.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps a service error to a status code. Client errors
// carry their message; everything else is logged and answered with
// failureMessage so no internals leak.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error, failureMessage string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCapacityExceeded):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithRequest(middleware.GetCorrelationID(r.Context())).Error(failureMessage, zap.Error(err))
		writeError(w, http.StatusInternalServerError, failureMessage)
	}
}
