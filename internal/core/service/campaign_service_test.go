package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

func newTestCampaignService(repo *stubCampaignRepo, now time.Time) *CampaignService {
	svc := NewCampaignService(repo, zerolog.Nop())
	svc.now = clockAt(now)
	return svc
}

func ptr[T any](v T) *T { return &v }

var actor = &domain.User{ID: "actor-1", Role: domain.RoleAccountManager}

func TestCampaignService_Create_Defaults(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := newTestCampaignService(repo, fixedNow)

	c, err := svc.Create(context.Background(), ports.CampaignInput{
		Title:        "Spring SEO push",
		CampaignType: domain.CampaignSEO,
		ClientName:   "Acme",
	}, actor)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.CampaignPlanning, c.Status)
	assert.Equal(t, "actor-1", c.CreatedBy)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Equal(t, fixedNow, c.UpdatedAt)
	assert.NotNil(t, c.AssignedTeam)
	assert.Empty(t, c.AssignedTeam)
}

func TestCampaignService_Create_Validation(t *testing.T) {
	svc := newTestCampaignService(newStubCampaignRepo(), fixedNow)

	valid := ports.CampaignInput{Title: "T", CampaignType: domain.CampaignPPC, ClientName: "C"}
	cases := map[string]func(in *ports.CampaignInput){
		"missing title":   func(in *ports.CampaignInput) { in.Title = " " },
		"missing client":  func(in *ports.CampaignInput) { in.ClientName = "" },
		"unknown type":    func(in *ports.CampaignInput) { in.CampaignType = "radio" },
		"unknown status":  func(in *ports.CampaignInput) { in.Status = ptr(domain.CampaignStatus("archived")) },
		"negative budget":  func(in *ports.CampaignInput) { in.Budget = ptr(-1.0) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := svc.Create(context.Background(), in, actor)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCampaignService_Update_ReplacesAndKeepsStatus(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := newTestCampaignService(repo, fixedNow)
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CampaignInput{
		Title:        "Launch",
		Description:  ptr("first draft"),
		CampaignType: domain.CampaignBrandLaunch,
		Status:       ptr(domain.CampaignActive),
		ClientName:   "Acme",
		Budget:       ptr(5000.0),
	}, actor)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc.now = clockAt(later)

	updated, err := svc.Update(ctx, created.ID, ports.CampaignInput{
		Title:        "Launch v2",
		CampaignType: domain.CampaignBrandLaunch,
		ClientName:   "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "Launch v2", updated.Title)
	assert.Nil(t, updated.Description, "omitted optional fields are cleared by a full replace")
	assert.Nil(t, updated.Budget)
	assert.Equal(t, domain.CampaignActive, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "actor-1", updated.CreatedBy)
	assert.Equal(t, later, updated.UpdatedAt)

	updated, err = svc.Update(ctx, created.ID, ports.CampaignInput{
		Title:        "Launch v2",
		CampaignType: domain.CampaignBrandLaunch,
		Status:       ptr(domain.CampaignPaused),
		ClientName:   "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignPaused, updated.Status)
}

func TestCampaignService_NotFound(t *testing.T) {
	svc := newTestCampaignService(newStubCampaignRepo(), fixedNow)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)

	_, err = svc.Update(context.Background(), "missing", ports.CampaignInput{
		Title: "T", CampaignType: domain.CampaignPR, ClientName: "C",
	})
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}
