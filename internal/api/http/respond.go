package http

import (
	"encoding/json"
	"net/http"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
)

// errorBody is the structured error the API returns: a discriminated
// code for clients to branch on, plus the human-readable message the
// legacy UI surfaced as a toast.
type errorBody struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeRawJSON writes pre-marshalled JSON (cached reference payloads).
func writeRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageBody{Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := statusFor(code)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal detail stays in the log, not the response.
		logger.Error("Request failed", "code", code, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnavailable,
		domain.CodeInsufficientFunds,
		domain.CodeAlreadyRented,
		domain.CodeTooFar,
		domain.CodeInvalidPosition,
		domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
