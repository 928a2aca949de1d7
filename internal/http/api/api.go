// Package api assembles the chi router: middleware stack, fallback
// handlers and the student routes under the configured base path.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/springlab/students-api/internal/http/handlers/student"
	"github.com/springlab/students-api/internal/http/middleware/logger"
	"github.com/springlab/students-api/internal/utils/response"
)

const defaultBasePath = "/api/students"

// NewRouter wires every route. An empty basePath falls back to
// /api/students.
//
//	POST   {base}                  create
//	GET    {base}                  list
//	GET    {base}/{id}             get by id
//	PATCH  {base}/{id}/deactivate  deactivate
func NewRouter(basePath string, log *slog.Logger, svc student.Core) http.Handler {
	if basePath == "" {
		basePath = defaultBasePath
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(notFound)
	router.MethodNotAllowed(notAllowed)

	router.Route(basePath, func(r chi.Router) {
		r.Post("/", student.New(log, svc))
		r.Get("/", student.GetList(log, svc))
		r.Get("/{id}", student.GetByID(log, svc))
		r.Patch("/{id}/deactivate", student.Deactivate(log, svc))
	})

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, r, http.StatusNotFound,
		response.GeneralError(http.StatusNotFound, "requested resource not found"))
}

func notAllowed(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, r, http.StatusMethodNotAllowed,
		response.GeneralError(http.StatusMethodNotAllowed, "method not allowed"))
}
