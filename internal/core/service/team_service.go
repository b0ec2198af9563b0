package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/pkg/metrics"
)

type TeamService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTeamService(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{users: users, tasks: tasks, logger: logger, now: time.Now}
}

func (s *TeamService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *TeamService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies the non-nil fields of update. A changed email must stay
// unique across members.
func (s *TeamService) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *update.Role)
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		existing, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update team member: %w", err)
		}
		update.Email = &email
	}

	updated, err := s.users.Update(ctx, id, update, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("team member updated")
	return updated, nil
}

// Delete removes a member and then clears their task assignments. A failure
// while unassigning is logged; the member stays deleted.
func (s *TeamService) Delete(ctx context.Context, id string, actor *domain.User) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if actor != nil && actor.ID == id {
		return domain.ErrForbidden
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	n, err := s.tasks.UnassignUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to unassign tasks of deleted member")
		return nil
	}
	metrics.TasksUnassignedTotal.Add(float64(n))
	s.logger.Info().Str("user_id", id).Int64("tasks_unassigned", n).Msg("team member deleted")
	return nil
}
