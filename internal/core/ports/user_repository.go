package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// ListLimit caps every unfiltered list read. It is a hard ceiling, not a page size.
const ListLimit = 1000

// UserRepository defines persistence operations for team members.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update sets only the non-nil fields of update and stamps updated_at with at.
	Update(ctx context.Context, id string, update domain.UserUpdate, at time.Time) (*domain.User, error)
	// Delete reports false when no user had the given id.
	Delete(ctx context.Context, id string) (bool, error)
}
