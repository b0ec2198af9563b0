package ports

import (
	"context"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// TeamService manages existing team members. Accounts are created through
// AuthService.Register.
type TeamService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	// Delete removes the member and unassigns their tasks. actor cannot delete
	// their own account.
	Delete(ctx context.Context, id string, actor *domain.User) error
}

// DashboardService computes summary counts.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
