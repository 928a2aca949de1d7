// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's database/sql package.
//
// Importing go-sqlite3 registers the "sqlite3" driver in its init(); the
// package is also used directly to recognise constraint errors.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/springlab/students-api/internal/config"
	"github.com/springlab/students-api/internal/storage"
	"github.com/springlab/students-api/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database at cfg.StoragePath, creates the students table if
// it does not exist yet, and returns a ready-to-use *SQLite.
//
// The pool is limited to one connection: SQLite serialises writers anyway,
// and a ":memory:" database only exists inside the connection that made it.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// The UNIQUE index on email is the authoritative duplicate guard; the
	// service-level existence check only short-circuits the common case.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name  TEXT    NOT NULL,
			email      TEXT    NOT NULL UNIQUE,
			birth_date TEXT,
			active     BOOLEAN NOT NULL DEFAULT 1
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Insert adds a new row and returns the student with the ID SQLite assigned.
func (s *SQLite) Insert(ctx context.Context, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (full_name, email, birth_date, active) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("Insert: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, student.FullName, student.Email, student.BirthDate, student.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailTaken
		}
		return types.Student{}, fmt.Errorf("Insert: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("Insert: last insert id: %w", err)
	}

	student.ID = lastID
	return student, nil
}

// GetByID fetches exactly one student matched by primary key.
func (s *SQLite) GetByID(ctx context.Context, id int64) (types.Student, error) {
	return s.getOne(ctx, "GetByID",
		"SELECT id, full_name, email, birth_date, active FROM students WHERE id = ? LIMIT 1", id)
}

// GetByEmail fetches exactly one student matched by email.
func (s *SQLite) GetByEmail(ctx context.Context, email string) (types.Student, error) {
	return s.getOne(ctx, "GetByEmail",
		"SELECT id, full_name, email, birth_date, active FROM students WHERE email = ? LIMIT 1", email)
}

func (s *SQLite) getOne(ctx context.Context, op, query string, arg any) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, query)
	if err != nil {
		return types.Student{}, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	var student types.Student

	// birth_date is nullable; scanning into **string leaves it nil on NULL.
	err = stmt.QueryRowContext(ctx, arg).Scan(
		&student.ID,
		&student.FullName,
		&student.Email,
		&student.BirthDate,
		&student.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("%s: scan: %w", op, err)
	}

	return student, nil
}

// ExistsByEmail reports whether a row with the given email exists.
func (s *SQLite) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM students WHERE email = ?)",
	)
	if err != nil {
		return false, fmt.Errorf("ExistsByEmail: prepare: %w", err)
	}
	defer stmt.Close()

	var exists bool
	if err := stmt.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByEmail: scan: %w", err)
	}

	return exists, nil
}

// Update writes every mutable column of the student, then re-reads the row
// so the caller gets exactly what is stored.
func (s *SQLite) Update(ctx context.Context, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE students SET full_name = ?, email = ?, birth_date = ?, active = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("Update: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		student.FullName, student.Email, student.BirthDate, student.Active, student.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailTaken
		}
		return types.Student{}, fmt.Errorf("Update: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("Update: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrNotFound
	}

	return s.GetByID(ctx, student.ID)
}

// ListAll returns every student ordered by id, which is insertion order.
func (s *SQLite) ListAll(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, full_name, email, birth_date, active FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("ListAll: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAll: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the API encodes [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.FullName,
			&student.Email,
			&student.BirthDate,
			&student.Active,
		); err != nil {
			return nil, fmt.Errorf("ListAll: scan row: %w", err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAll: rows iteration: %w", err)
	}

	return students, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
