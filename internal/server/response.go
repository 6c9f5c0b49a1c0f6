package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// WriteErrorResponse writes an error response in JSON format
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// StatusFromError maps a domain error onto an HTTP status and a message safe
// to show the caller
func StatusFromError(err error) (int, string) {
	var ve models.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// HandleError logs unexpected errors and writes the matching error response
func HandleError(w http.ResponseWriter, r *http.Request, log *logger.Logger, action string, err error) {
	requestID := logger.RequestIDFromContext(r.Context())
	status, message := StatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error(action, "Request failed", requestID, err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	} else {
		log.Debug(action, message, requestID, map[string]interface{}{
			"status_code": status,
		})
	}
	WriteErrorResponse(w, status, message, requestID)
}

// DecodeJSON parses a JSON request body into v, rejecting unknown fields
func DecodeJSON(r *http.Request, v interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return models.ValidationError{Field: "body", Message: "Content-Type must be application/json"}
		}
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return models.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

// PathID parses a record identifier path value
func PathID(r *http.Request, name string) (int, error) {
	id, ok := models.ParseID(r.PathValue(name))
	if !ok {
		return 0, models.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}
