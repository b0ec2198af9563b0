package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// TaskFilter narrows task list reads. Empty fields do not filter.
type TaskFilter struct {
	CampaignID string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// Update applies the non-nil fields of patch and stamps updated_at with at.
	Update(ctx context.Context, id string, patch domain.TaskPatch, at time.Time) (*domain.Task, error)
	// Delete reports false when no task had the given id.
	Delete(ctx context.Context, id string) (bool, error)
	// UnassignUser removes the assignee reference from every task assigned to
	// userID and returns how many tasks were touched.
	UnassignUser(ctx context.Context, userID string) (int64, error)
}
