package student

import (
	"context"

	"github.com/springlab/students-api/internal/types"
)

// Core is the service behaviour the handlers need.
type Core interface {
	Create(ctx context.Context, req types.StudentRequest) (types.StudentResponse, error)
	GetByID(ctx context.Context, id int64) (types.StudentResponse, error)
	List(ctx context.Context) ([]types.StudentResponse, error)
	Deactivate(ctx context.Context, id int64) (types.StudentResponse, error)
}
