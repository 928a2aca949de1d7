// Package student holds the business rules for student records: unique
// emails on create, existence checks on lookups, and soft deactivation.
//
// The service knows nothing about HTTP. It reports failures as ErrNotFound
// and ErrConflict and leaves status codes to the handler layer.
package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/springlab/students-api/internal/lib/sl"
	"github.com/springlab/students-api/internal/storage"
	"github.com/springlab/students-api/internal/types"
)

var (
	ErrNotFound = errors.New("student not found")
	ErrConflict = errors.New("email is already registered")
)

// Service implements the student use cases on top of a storage.Storage.
type Service struct {
	store storage.Storage
	log   *slog.Logger
}

func New(store storage.Storage, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With(sl.Module("service.student")),
	}
}

// Create registers a new, active student.
//
// ExistsByEmail is only a fast path: two concurrent creates can both pass
// it, so a unique violation reported by the store is also a conflict.
func (s *Service) Create(ctx context.Context, req types.StudentRequest) (types.StudentResponse, error) {
	exists, err := s.store.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return types.StudentResponse{}, fmt.Errorf("create: check email: %w", err)
	}
	if exists {
		return types.StudentResponse{}, ErrConflict
	}

	saved, err := s.store.Insert(ctx, types.Student{
		FullName:  req.FullName,
		Email:     req.Email,
		BirthDate: req.BirthDate,
		Active:    true,
	})
	if errors.Is(err, storage.ErrEmailTaken) {
		s.log.Warn("email taken between check and insert", slog.String("email", req.Email))
		return types.StudentResponse{}, ErrConflict
	}
	if err != nil {
		return types.StudentResponse{}, fmt.Errorf("create: insert: %w", err)
	}

	s.log.Debug("student created", slog.Int64("id", saved.ID))
	return types.ToResponse(saved), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (types.StudentResponse, error) {
	student, err := s.fetch(ctx, id)
	if err != nil {
		return types.StudentResponse{}, err
	}
	return types.ToResponse(student), nil
}

// List returns every student in store order; never nil.
func (s *Service) List(ctx context.Context) ([]types.StudentResponse, error) {
	students, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	out := make([]types.StudentResponse, 0, len(students))
	for _, st := range students {
		out = append(out, types.ToResponse(st))
	}
	return out, nil
}

// Deactivate marks the student inactive. Deactivating an inactive student
// succeeds and writes active=false again.
func (s *Service) Deactivate(ctx context.Context, id int64) (types.StudentResponse, error) {
	student, err := s.fetch(ctx, id)
	if err != nil {
		return types.StudentResponse{}, err
	}

	student.Active = false

	updated, err := s.store.Update(ctx, student)
	if errors.Is(err, storage.ErrNotFound) {
		return types.StudentResponse{}, ErrNotFound
	}
	if err != nil {
		return types.StudentResponse{}, fmt.Errorf("deactivate: update: %w", err)
	}

	s.log.Debug("student deactivated", slog.Int64("id", id))
	return types.ToResponse(updated), nil
}

// fetch is the single fetch-or-fail path for reads that need an existing
// record.
func (s *Service) fetch(ctx context.Context, id int64) (types.Student, error) {
	student, err := s.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return types.Student{}, ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return student, nil
}
