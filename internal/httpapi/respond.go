package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jacentio/catalog/catalog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Detail         string   `json:"detail,omitempty"`
	RequiredFields []string `json:"requiredFields,omitempty"`
	AllowedValues  []string `json:"allowedValues,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			// Avoid writing partial JSON.
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with the given status.
func JSONError(w http.ResponseWriter, status int, msg, detail string) {
	JSON(w, status, ErrorResponse{Error: msg, Detail: detail})
}

// StatusOf maps a service error to an HTTP status.
func StatusOf(err error) int {
	switch {
	case catalog.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders err. Internal failures are logged with their cause and
// answered with a generic body.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusOf(err)

	var e *catalog.Error
	if status == http.StatusInternalServerError || !errors.As(err, &e) {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		JSONError(w, http.StatusInternalServerError,
			"internal server error",
			"please try again later")
		return
	}

	JSON(w, status, ErrorResponse{
		Error:          e.Error(),
		Detail:         e.Detail,
		RequiredFields: e.Required,
		AllowedValues:  e.Allowed,
	})
}
