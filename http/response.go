package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"deal-engine/domain"
	"deal-engine/logger"
)

type errorResponse struct {
	Code    domain.ErrorCode `json:"code"`
	Field   string           `json:"field,omitempty"`
	Message string           `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the engine error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and reported as a 500 without details.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var (
		verr *domain.ValidationError
		cerr *domain.CapacityError
		nerr *domain.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: verr.Code(), Field: verr.Field, Message: verr.Message})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, errorResponse{Code: cerr.Code(), Message: cerr.Error()})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: nerr.Code(), Message: nerr.Error()})
	default:
		log.WithError(err).Error("request failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    domain.ErrCodeInternal,
			Message: "internal error",
		})
	}
}
