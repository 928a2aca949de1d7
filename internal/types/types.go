// Package types holds the data structures shared across the application.
// Keeping them in one place prevents import cycles: handlers, the service,
// and storage can all import types without depending on each other.
package types

// Student is the persisted student record.
//
// ID is assigned by the store on insert and never changes afterwards.
// Active starts as true and is only ever flipped to false (soft delete).
type Student struct {
	ID        int64
	FullName  string
	Email     string
	BirthDate *string // YYYY-MM-DD, nil when not provided
	Active    bool
}

// StudentRequest is the body accepted when creating a student.
//
// There is no id or active field: callers cannot choose either value.
// The validate:"..." tags are checked by the validation package before the
// request reaches the service.
type StudentRequest struct {
	FullName  string  `json:"fullName"  validate:"required,notblank,min=3,max=120"`
	Email     string  `json:"email"     validate:"required,email,max=120"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

// StudentResponse is the read projection returned to API clients.
type StudentResponse struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birthDate"`
	Active    bool    `json:"active"`
}

// ToResponse projects a stored Student onto its API representation.
func ToResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		BirthDate: s.BirthDate,
		Active:    s.Active,
	}
}
