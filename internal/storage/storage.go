// Package storage defines the Storage interface, the contract any database
// backend must satisfy to hold student records.
//
// The service depends only on this interface, so the engine behind it can
// be swapped (or faked in tests) without touching business rules.
package storage

import (
	"context"
	"errors"

	"github.com/springlab/students-api/internal/types"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("storage: record not found")

	// ErrEmailTaken is returned by Insert when the engine's unique index on
	// email rejects the row.
	ErrEmailTaken = errors.New("storage: email already exists")
)

// Storage is the record store contract. Implementations perform no
// validation; callers are expected to pass well-formed records.
type Storage interface {
	// Insert persists a new student and returns it with its assigned ID.
	// Any ID on the input is ignored.
	Insert(ctx context.Context, student types.Student) (types.Student, error)

	// GetByID fetches a student by primary key, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (types.Student, error)

	// GetByEmail fetches a student by email (exact match), or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (types.Student, error)

	// ExistsByEmail reports whether any student uses the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update overwrites every mutable column of an existing student and
	// returns the stored result. ErrNotFound if the ID is unknown.
	Update(ctx context.Context, student types.Student) (types.Student, error)

	// ListAll returns every student in insertion order. The slice is empty,
	// not nil, when there are no students.
	ListAll(ctx context.Context) ([]types.Student, error)
}
