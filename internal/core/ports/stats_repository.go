package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// StatsRepository answers the count queries behind the dashboard. Every call
// scans current store state; nothing is cached.
type StatsRepository interface {
	CountCampaignsByStatus(ctx context.Context, status domain.CampaignStatus) (int64, error)
	CountTasksByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
	// CountOverdueTasks counts tasks due strictly before now that are not completed.
	CountOverdueTasks(ctx context.Context, now time.Time) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
}
