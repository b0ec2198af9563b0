package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/pkg/metrics"
)

type TaskService struct {
	tasks     ports.TaskRepository
	campaigns ports.CampaignRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewTaskService(tasks ports.TaskRepository, campaigns ports.CampaignRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, campaigns: campaigns, logger: logger, now: time.Now}
}

// Create stores a new task after checking that its campaign exists. Status
// starts at todo and priority defaults to medium. Assignee and dependency
// references are not checked.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput, actor *domain.User) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.CampaignID == "" {
		return nil, fmt.Errorf("%w: campaign_id is required", domain.ErrValidation)
	}

	priority := domain.PriorityMedium
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *in.Priority)
		}
		priority = *in.Priority
	}

	if _, err := s.campaigns.FindByID(ctx, in.CampaignID); err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create task: %w", err)
	}

	now := s.now().UTC()
	task := &domain.Task{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		CampaignID:     in.CampaignID,
		AssigneeID:     in.AssigneeID,
		Status:         domain.TaskTodo,
		Priority:       priority,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		Dependencies:   orEmpty(in.Dependencies),
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.logger.Info().Str("task_id", created.ID).Str("campaign_id", created.CampaignID).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.List(ctx, filter)
}

// Update applies the non-nil fields of patch.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *patch.Priority)
	}

	updated, err := s.tasks.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("task_id", id).Str("status", string(updated.Status)).Msg("task updated")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}
