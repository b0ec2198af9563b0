package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/pkg/metrics"
)

type DashboardService struct {
	stats  ports.StatsRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewDashboardService(stats ports.StatsRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{stats: stats, logger: logger, now: time.Now}
}

// Stats counts campaigns and tasks per status, overdue tasks and active
// members. Every status appears in the result, including those with zero
// entries. Counts are independent reads and are not a consistent snapshot.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	start := time.Now()
	defer func() {
		metrics.DashboardQueryDuration.Observe(time.Since(start).Seconds())
	}()

	out := &domain.DashboardStats{
		Campaigns: make(map[domain.CampaignStatus]int64, len(domain.AllCampaignStatuses())),
		Tasks:     make(map[domain.TaskStatus]int64, len(domain.AllTaskStatuses())),
	}

	for _, status := range domain.AllCampaignStatuses() {
		n, err := s.stats.CountCampaignsByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count campaigns %s: %w", status, err)
		}
		out.Campaigns[status] = n
	}

	for _, status := range domain.AllTaskStatuses() {
		n, err := s.stats.CountTasksByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count tasks %s: %w", status, err)
		}
		out.Tasks[status] = n
	}

	overdue, err := s.stats.CountOverdueTasks(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}
	out.OverdueTasks = overdue

	members, err := s.stats.CountActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count team members: %w", err)
	}
	out.TeamMembers = members

	s.logger.Debug().Int64("overdue_tasks", overdue).Int64("team_members", members).Msg("dashboard stats computed")
	return out, nil
}
