package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/infrastructure/http/handlers"
)

const validToken = "valid-token"

var member = &domain.User{ID: "u-1", Email: "ana@example.com", Name: "Ana", Role: domain.RoleDesigner, IsActive: true}

type fakeAuth struct{ loginErr error }

func (f fakeAuth) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "u-new", Email: in.Email, Name: in.Name, Role: in.Role, IsActive: true}, nil
}

func (f fakeAuth) Login(context.Context, string, string) (*ports.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &ports.LoginResult{AccessToken: validToken, TokenType: "bearer"}, nil
}

func (f fakeAuth) Resolve(_ context.Context, token string) (*domain.User, error) {
	if token != validToken {
		return nil, domain.ErrInvalidToken
	}
	return member, nil
}

type fakeCampaigns struct{ ports.CampaignService }

func (fakeCampaigns) Get(context.Context, string) (*domain.Campaign, error) {
	return nil, domain.ErrCampaignNotFound
}

type fakeTasks struct{ ports.TaskService }

func (fakeTasks) Delete(_ context.Context, id string) error {
	if id == "boom" {
		return errors.New("mongo: connection reset")
	}
	return nil
}

type fakeTeam struct{ ports.TeamService }

func (fakeTeam) Delete(_ context.Context, id string, actor *domain.User) error {
	if id == actor.ID {
		return domain.ErrForbidden
	}
	return nil
}

func (fakeTeam) Update(context.Context, string, domain.UserUpdate) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

type fakeDashboard struct{}

func (fakeDashboard) Stats(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{
		Campaigns: map[domain.CampaignStatus]int64{},
		Tasks:     map[domain.TaskStatus]int64{},
	}, nil
}

func newTestRouter(t *testing.T, auth fakeAuth) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(Dependencies{
		Auth:      auth,
		Identity:  auth,
		Campaigns: fakeCampaigns{},
		Tasks:     fakeTasks{},
		Team:      fakeTeam{},
		Dashboard: fakeDashboard{},
		Checks: map[string]handlers.CheckFunc{
			"mongodb": func(context.Context) error { return nil },
		},
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(t, fakeAuth{})

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ServiceName)

	rec = do(e, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginAndMe(t *testing.T) {
	e := newTestRouter(t, fakeAuth{})

	rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)

	rec = do(e, http.MethodGet, "/api/auth/me", "", tok.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"u-1"`)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestRouter(t, fakeAuth{})
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/campaigns"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodDelete, "/api/team/u-2"},
		{http.MethodGet, "/api/dashboard/stats"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := do(e, r.method, r.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

			rec = do(e, r.method, r.path, "", "forged")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "could not validate credentials", errorOf(t, rec))
		})
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		auth   fakeAuth
		method string
		path   string
		body   string
		token  string
		status int
		msg    string
	}{
		{"bad credentials", fakeAuth{loginErr: domain.ErrInvalidCredentials}, http.MethodPost, "/api/auth/login",
			`{"email":"ana@example.com","password":"x"}`, "", http.StatusUnauthorized, "incorrect email or password"},
		{"throttled", fakeAuth{loginErr: domain.ErrTooManyAttempts}, http.MethodPost, "/api/auth/login",
			`{"email":"ana@example.com","password":"x"}`, "", http.StatusTooManyRequests, "too many failed login attempts"},
		{"validation", fakeAuth{}, http.MethodPost, "/api/auth/register",
			`{"email":"ana@example.com"}`, "", http.StatusUnprocessableEntity, ""},
		{"malformed body", fakeAuth{}, http.MethodPost, "/api/auth/login",
			`{"email":`, "", http.StatusBadRequest, "invalid payload"},
		{"not found", fakeAuth{}, http.MethodGet, "/api/campaigns/nope", "", validToken, http.StatusNotFound, "campaign not found"},
		{"forbidden", fakeAuth{}, http.MethodDelete, "/api/team/u-1", "", validToken, http.StatusForbidden, "cannot delete your own account"},
		{"conflict", fakeAuth{}, http.MethodPut, "/api/team/u-2", `{"email":"taken@example.com"}`, validToken, http.StatusConflict, "email already registered"},
		{"unexpected", fakeAuth{}, http.MethodDelete, "/api/tasks/boom", "", validToken, http.StatusInternalServerError, "internal server error"},
		{"unknown route", fakeAuth{}, http.MethodGet, "/api/nowhere", "", "", http.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(newTestRouter(t, tc.auth), tc.method, tc.path, tc.body, tc.token)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			msg := errorOf(t, rec)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, msg)
			} else {
				assert.True(t, strings.HasPrefix(msg, domain.ErrValidation.Error()), msg)
			}
		})
	}
}

func TestRouter_DeleteTaskMessage(t *testing.T) {
	rec := do(newTestRouter(t, fakeAuth{}), http.MethodDelete, "/api/tasks/t-1", "", validToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	e := newTestRouter(t, fakeAuth{})
	do(e, http.MethodGet, "/health", "", "")

	rec := do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "demandhub_http_requests_total")
}

func TestRouter_CORSPreflight(t *testing.T) {
	e := newTestRouter(t, fakeAuth{})
	req := httptest.NewRequest(http.MethodOptions, "/api/campaigns", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestResolveError_WrappedSentinel(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	code, msg := resolveError(fmt.Errorf("resolve identity: %w", domain.ErrInvalidToken), zerolog.Nop(), c)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "could not validate credentials", msg)
}
