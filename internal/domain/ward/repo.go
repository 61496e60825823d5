package ward

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for ward configuration.
type Repository interface {
	List(ctx context.Context, deptType string, includeInactive bool) ([]*Ward, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Ward, error)
	GetByCode(ctx context.Context, code string) (*Ward, error)
	Create(ctx context.Context, w *Ward) error
	Update(ctx context.Context, w *Ward) error
	Delete(ctx context.Context, id uuid.UUID) error
}
