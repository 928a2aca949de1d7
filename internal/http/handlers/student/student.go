// Package student contains the HTTP handlers for the Student resource.
//
// Every handler is built by a factory that receives its dependencies once at
// startup and returns the http.HandlerFunc the router calls per request:
//
//	r.Post("/", student.New(log, svc))
//
// Handlers decode and validate input, call the service, and hand any error
// to response.Error, which owns the error -> status mapping.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/springlab/students-api/internal/lib/sl"
	"github.com/springlab/students-api/internal/types"
	"github.com/springlab/students-api/internal/utils/response"
	"github.com/springlab/students-api/internal/validation"
)

const mod = "http.handlers.student"

func requestLogger(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With(
		sl.Module(mod),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /
// Creates a student from the JSON body.
//
// Request body:
//
//	{ "fullName": "Ana Perez", "email": "ana@x.com", "birthDate": "2001-09-14" }
//
// 201 with the created student; 400 on an empty/malformed body or failed
// validation; 409 if the email is already registered.
// ─────────────────────────────────────────────────────────────────────────────
func New(log *slog.Logger, svc Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		var req types.StudentRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, r, http.StatusBadRequest,
				response.GeneralError(http.StatusBadRequest, "request body is empty"))
			return
		}
		if err != nil {
			logger.Debug("failed to decode request body", sl.Err(err))
			response.WriteJSON(w, r, http.StatusBadRequest,
				response.GeneralError(http.StatusBadRequest, "malformed request body: "+err.Error()))
			return
		}

		if fields := validation.Validate(req); fields != nil {
			logger.Debug("validation failed", slog.Any("fields", fields))
			response.WriteJSON(w, r, http.StatusBadRequest, response.ValidationError(fields))
			return
		}

		created, err := svc.Create(r.Context(), req)
		if err != nil {
			logger.Error("failed to create student", sl.Err(err))
			response.Error(w, r, err)
			return
		}

		logger.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, r, http.StatusCreated, created)
	}
}

// GetByID handles GET /{id}.
func GetByID(log *slog.Logger, svc Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		st, err := svc.GetByID(r.Context(), id)
		if err != nil {
			logger.Error("failed to get student", slog.Int64("id", id), sl.Err(err))
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, r, http.StatusOK, st)
	}
}

// GetList handles GET /. The body is [] (not null) when there are no
// students.
func GetList(log *slog.Logger, svc Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		students, err := svc.List(r.Context())
		if err != nil {
			logger.Error("failed to list students", sl.Err(err))
			response.Error(w, r, err)
			return
		}

		logger.Debug("students listed", slog.Int("count", len(students)))
		response.WriteJSON(w, r, http.StatusOK, students)
	}
}

// Deactivate handles PATCH /{id}/deactivate.
func Deactivate(log *slog.Logger, svc Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		st, err := svc.Deactivate(r.Context(), id)
		if err != nil {
			logger.Error("failed to deactivate student", slog.Int64("id", id), sl.Err(err))
			response.Error(w, r, err)
			return
		}

		logger.Info("student deactivated", slog.Int64("id", id))
		response.WriteJSON(w, r, http.StatusOK, st)
	}
}

// pathID parses the {id} URL segment. On failure it writes the 400 itself.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, r, http.StatusBadRequest,
			response.GeneralError(http.StatusBadRequest, "invalid id: must be an integer"))
		return 0, false
	}
	return id, true
}
