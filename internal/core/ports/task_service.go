package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title          string
	Description    *string
	CampaignID     string
	AssigneeID     *string
	Priority       *domain.TaskPriority // defaults to medium
	DueDate        *time.Time
	EstimatedHours *float64
	Dependencies   []string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput, actor *domain.User) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
