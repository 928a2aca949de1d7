// Package response writes JSON responses and builds the error envelope
// every failing request returns:
//
//	{ "timestamp": "...", "status": 404, "error": "Not Found", "message": "student not found" }
//
// Validation failures replace error/message with a per-field map:
//
//	{ "timestamp": "...", "status": 400, "errors": { "email": "must be a well-formed email address" } }
package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/springlab/students-api/internal/service/student"
)

// Envelope is the uniform error body.
type Envelope struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error,omitempty"`
	Message   string            `json:"message,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// now is swapped in tests for a fixed clock.
var now = time.Now

// WriteJSON renders data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// GeneralError builds an envelope carrying the status reason phrase and msg.
func GeneralError(status int, msg string) Envelope {
	return Envelope{
		Timestamp: now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
	}
}

// ValidationError builds the 400 envelope for field-level failures.
func ValidationError(fields map[string]string) Envelope {
	return Envelope{
		Timestamp: now(),
		Status:    http.StatusBadRequest,
		Errors:    fields,
	}
}

// FromError is the single place a service error becomes an HTTP status.
// Anything it does not recognise is a 500.
func FromError(err error) Envelope {
	switch {
	case errors.Is(err, student.ErrNotFound):
		return GeneralError(http.StatusNotFound, err.Error())
	case errors.Is(err, student.ErrConflict):
		return GeneralError(http.StatusConflict, err.Error())
	default:
		return GeneralError(http.StatusInternalServerError, err.Error())
	}
}

// Error writes the envelope for err.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	env := FromError(err)
	WriteJSON(w, r, env.Status, env)
}
