package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/pkg/metrics"
)

type CampaignService struct {
	repo   ports.CampaignRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCampaignService(repo ports.CampaignRepository, logger zerolog.Logger) *CampaignService {
	return &CampaignService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new campaign owned by actor. Status defaults to planning.
func (s *CampaignService) Create(ctx context.Context, in ports.CampaignInput, actor *domain.User) (*domain.Campaign, error) {
	if err := validateCampaignInput(in); err != nil {
		return nil, err
	}

	status := domain.CampaignPlanning
	if in.Status != nil {
		status = *in.Status
	}

	now := s.now().UTC()
	campaign := &domain.Campaign{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		CampaignType: in.CampaignType,
		Status:       status,
		ClientName:   strings.TrimSpace(in.ClientName),
		Budget:       in.Budget,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		AssignedTeam: orEmpty(in.AssignedTeam),
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	metrics.CampaignsCreatedTotal.WithLabelValues(string(created.CampaignType)).Inc()
	s.logger.Info().Str("campaign_id", created.ID).Str("created_by", actor.ID).Msg("campaign created")
	return created, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context) ([]*domain.Campaign, error) {
	return s.repo.List(ctx)
}

// Update replaces every mutable field with in. The stored status is kept when
// in.Status is nil.
func (s *CampaignService) Update(ctx context.Context, id string, in ports.CampaignInput) (*domain.Campaign, error) {
	if err := validateCampaignInput(in); err != nil {
		return nil, err
	}

	replacement := &domain.Campaign{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		CampaignType: in.CampaignType,
		ClientName:   strings.TrimSpace(in.ClientName),
		Budget:       in.Budget,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		AssignedTeam: orEmpty(in.AssignedTeam),
		UpdatedAt:    s.now().UTC(),
	}
	if in.Status != nil {
		replacement.Status = *in.Status
	}

	updated, err := s.repo.Replace(ctx, id, replacement)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("campaign_id", id).Msg("campaign updated")
	return updated, nil
}

func validateCampaignInput(in ports.CampaignInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", domain.ErrValidation)
	}
	if !in.CampaignType.Valid() {
		return fmt.Errorf("%w: unknown campaign_type %q", domain.ErrValidation, in.CampaignType)
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *in.Status)
	}
	if in.Budget != nil && *in.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return nil
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
