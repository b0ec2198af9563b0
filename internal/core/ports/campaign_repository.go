package ports

import (
	"context"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// CampaignRepository defines persistence operations for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	// Replace overwrites every mutable field of the stored campaign with the
	// values in c. ID, CreatedBy and CreatedAt are never written. Status is
	// written only when c.Status is non-empty.
	Replace(ctx context.Context, id string, c *domain.Campaign) (*domain.Campaign, error)
}
