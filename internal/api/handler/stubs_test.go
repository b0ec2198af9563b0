package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/demandhub/consultancy-api/internal/api/middleware"
	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

var actor = &domain.User{ID: "u-actor", Email: "lead@example.com", Name: "Lead", Role: domain.RoleAccountManager, IsActive: true}

// newContext builds an echo.Context carrying body and, when user is non-nil,
// the authenticated user.
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

type stubAuthService struct {
	registered ports.RegisterInput
	user       *domain.User
	result     *ports.LoginResult
	err        error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.registered = in
	return s.user, s.err
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return s.result, s.err
}

type stubCampaignService struct {
	input    ports.CampaignInput
	actor    *domain.User
	id       string
	campaign *domain.Campaign
	list     []*domain.Campaign
	err      error
}

func (s *stubCampaignService) Create(_ context.Context, in ports.CampaignInput, actor *domain.User) (*domain.Campaign, error) {
	s.input, s.actor = in, actor
	return s.campaign, s.err
}

func (s *stubCampaignService) Get(_ context.Context, id string) (*domain.Campaign, error) {
	s.id = id
	return s.campaign, s.err
}

func (s *stubCampaignService) List(context.Context) ([]*domain.Campaign, error) {
	return s.list, s.err
}

func (s *stubCampaignService) Update(_ context.Context, id string, in ports.CampaignInput) (*domain.Campaign, error) {
	s.id, s.input = id, in
	return s.campaign, s.err
}

type stubTaskService struct {
	input  ports.CreateTaskInput
	patch  domain.TaskPatch
	filter ports.TaskFilter
	id     string
	task   *domain.Task
	list   []*domain.Task
	err    error
}

func (s *stubTaskService) Create(_ context.Context, in ports.CreateTaskInput, _ *domain.User) (*domain.Task, error) {
	s.input = in
	return s.task, s.err
}

func (s *stubTaskService) Get(_ context.Context, id string) (*domain.Task, error) {
	s.id = id
	return s.task, s.err
}

func (s *stubTaskService) List(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	s.filter = filter
	return s.list, s.err
}

func (s *stubTaskService) Update(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	s.id, s.patch = id, patch
	return s.task, s.err
}

func (s *stubTaskService) Delete(_ context.Context, id string) error {
	s.id = id
	return s.err
}

type stubTeamService struct {
	update domain.UserUpdate
	id     string
	actor  *domain.User
	user   *domain.User
	list   []*domain.User
	called bool
	err    error
}

func (s *stubTeamService) List(context.Context) ([]*domain.User, error) {
	return s.list, s.err
}

func (s *stubTeamService) Get(_ context.Context, id string) (*domain.User, error) {
	s.id = id
	return s.user, s.err
}

func (s *stubTeamService) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	s.called = true
	s.id, s.update = id, update
	return s.user, s.err
}

func (s *stubTeamService) Delete(_ context.Context, id string, actor *domain.User) error {
	s.called = true
	s.id, s.actor = id, actor
	return s.err
}

type stubDashboardService struct {
	stats *domain.DashboardStats
	err   error
}

func (s *stubDashboardService) Stats(context.Context) (*domain.DashboardStats, error) {
	return s.stats, s.err
}

// statusOf returns the HTTP status carried by an *echo.HTTPError, or 0.
func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

