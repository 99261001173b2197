package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "websutech/pkg/errors"
)

// errorResponse is the failure envelope shared by all endpoints.
type errorResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// errors to 400 with per-field messages, auth to 401, not-found to 404,
// everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Errors: ve.Fields})
		return
	}

	status := http.StatusInternalServerError
	message := "Something went wrong!"
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		status = http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeBadRequest:
		status = http.StatusBadRequest
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 10<<20))
	if err := dec.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, "invalid request body", err)
	}
	return nil
}
