package ports

import (
	"context"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// CampaignInput is used for both create and full-replace update.
type CampaignInput struct {
	Title        string
	Description  *string
	CampaignType domain.CampaignType
	// Status is optional; create defaults to planning and update keeps the
	// stored status when nil.
	Status       *domain.CampaignStatus
	ClientName   string
	Budget       *float64
	StartDate    *time.Time
	EndDate      *time.Time
	AssignedTeam []string
}

// CampaignService defines use-case operations for campaigns.
type CampaignService interface {
	Create(ctx context.Context, in CampaignInput, actor *domain.User) (*domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	Update(ctx context.Context, id string, in CampaignInput) (*domain.Campaign, error)
}
