// Package response writes the OMDb-style JSON envelope every endpoint uses:
// success bodies carry Response "True" next to their payload fields, error
// bodies are exactly {"Response":"False","Error":<message>}.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope field values
const (
	ResponseTrue  = "True"
	ResponseFalse = "False"
)

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			// Headers are already out; nothing useful left to write.
			return
		}
	}
}

// Success writes a 200 with the payload fields merged next to Response "True".
// The payload map is modified in place.
func Success(w http.ResponseWriter, payload map[string]any) {
	if payload == nil {
		payload = make(map[string]any, 1)
	}
	payload["Response"] = ResponseTrue
	JSON(w, http.StatusOK, payload)
}

// Error writes an error envelope with the given status
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"Response": ResponseFalse,
		"Error":    message,
	})
}

// BadRequest writes a 400 error envelope
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Forbidden writes a 403 error envelope
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 error envelope
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not Found"
	}
	Error(w, http.StatusNotFound, message)
}

// TooManyRequests writes a 429 error envelope
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message)
}

// InternalError writes a 500 error envelope. The message is always generic;
// details stay in the server log.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
