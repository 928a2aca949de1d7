package student

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springlab/students-api/internal/lib/sl"
	svcstudent "github.com/springlab/students-api/internal/service/student"
	"github.com/springlab/students-api/internal/types"
)

// stubCore records calls and returns canned results.
type stubCore struct {
	createCalls int
	lastCreate  types.StudentRequest

	result types.StudentResponse
	list   []types.StudentResponse
	err    error
}

func (s *stubCore) Create(_ context.Context, req types.StudentRequest) (types.StudentResponse, error) {
	s.createCalls++
	s.lastCreate = req
	return s.result, s.err
}

func (s *stubCore) GetByID(_ context.Context, _ int64) (types.StudentResponse, error) {
	return s.result, s.err
}

func (s *stubCore) List(_ context.Context) ([]types.StudentResponse, error) {
	return s.list, s.err
}

func (s *stubCore) Deactivate(_ context.Context, _ int64) (types.StudentResponse, error) {
	return s.result, s.err
}

func serve(t *testing.T, svc Core, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	log := sl.Discard()
	r := chi.NewRouter()
	r.Post("/", New(log, svc))
	r.Get("/", GetList(log, svc))
	r.Get("/{id}", GetByID(log, svc))
	r.Patch("/{id}/deactivate", Deactivate(log, svc))

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestNew_Created(t *testing.T) {
	svc := &stubCore{result: types.StudentResponse{ID: 1, FullName: "Ana Perez", Email: "ana@x.com", Active: true}}

	rec, body := serve(t, svc, http.MethodPost, "/", `{"fullName":"Ana Perez","email":"ana@x.com"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, true, body["active"])
	assert.Nil(t, body["birthDate"])
	assert.Contains(t, body, "birthDate")
	assert.Equal(t, "ana@x.com", svc.lastCreate.Email)
}

func TestNew_IgnoresIDAndActiveInBody(t *testing.T) {
	svc := &stubCore{result: types.StudentResponse{ID: 1, Active: true}}

	rec, _ := serve(t, svc, http.MethodPost, "/", `{"id":99,"active":false,"fullName":"Ana Perez","email":"ana@x.com"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, types.StudentRequest{FullName: "Ana Perez", Email: "ana@x.com"}, svc.lastCreate)
}

func TestNew_EmptyBody(t *testing.T) {
	svc := &stubCore{}

	rec, body := serve(t, svc, http.MethodPost, "/", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", body["message"])
	assert.Equal(t, 0, svc.createCalls)
}

func TestNew_MalformedBody(t *testing.T) {
	svc := &stubCore{}

	rec, body := serve(t, svc, http.MethodPost, "/", `{"fullName": 12}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", body["error"])
	assert.Equal(t, 0, svc.createCalls)
}

func TestNew_ValidationFailure(t *testing.T) {
	svc := &stubCore{}

	rec, body := serve(t, svc, http.MethodPost, "/", `{"fullName":"Al","email":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(400), body["status"])
	assert.NotEmpty(t, body["timestamp"])

	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "email")
	assert.Equal(t, 0, svc.createCalls)
}

func TestNew_Conflict(t *testing.T) {
	svc := &stubCore{err: svcstudent.ErrConflict}

	rec, body := serve(t, svc, http.MethodPost, "/", `{"fullName":"Ana Perez","email":"ana@x.com"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, float64(409), body["status"])
	assert.Equal(t, "Conflict", body["error"])
	assert.Equal(t, svcstudent.ErrConflict.Error(), body["message"])
	assert.NotContains(t, body, "errors")
}

func TestGetByID(t *testing.T) {
	svc := &stubCore{result: types.StudentResponse{ID: 3, FullName: "Ana Perez", Email: "ana@x.com", Active: true}}

	rec, body := serve(t, svc, http.MethodGet, "/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["id"])
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &stubCore{err: svcstudent.ErrNotFound}

	rec, body := serve(t, svc, http.MethodGet, "/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "student not found", body["message"])
}

func TestGetByID_BadID(t *testing.T) {
	rec, body := serve(t, &stubCore{}, http.MethodGet, "/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id: must be an integer", body["message"])
}

func TestGetList_Empty(t *testing.T) {
	svc := &stubCore{list: []types.StudentResponse{}}

	rec, _ := serve(t, svc, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetList_Failure(t *testing.T) {
	svc := &stubCore{err: errors.New("database is locked")}

	rec, body := serve(t, svc, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, "database is locked", body["message"])
}

func TestDeactivate(t *testing.T) {
	svc := &stubCore{result: types.StudentResponse{ID: 3, Active: false}}

	rec, body := serve(t, svc, http.MethodPatch, "/3/deactivate", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["active"])
}

func TestDeactivate_NotFound(t *testing.T) {
	svc := &stubCore{err: svcstudent.ErrNotFound}

	rec, _ := serve(t, svc, http.MethodPatch, "/3/deactivate", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
