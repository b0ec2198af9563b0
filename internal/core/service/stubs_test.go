package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/pkg/password"
)

func init() {
	password.Cost = bcrypt.MinCost
}

var errStoreDown = errors.New("store unavailable")

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ── users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update domain.UserUpdate, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.AvatarURL != nil {
		u.AvatarURL = update.AvatarURL
	}
	if update.IsActive != nil {
		u.IsActive = *update.IsActive
	}
	u.UpdatedAt = &at
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// ── campaigns ─────────────────────────────────────────────────────────────────

type stubCampaignRepo struct {
	campaigns map[string]*domain.Campaign
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{campaigns: make(map[string]*domain.Campaign)}
}

func (r *stubCampaignRepo) Create(_ context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	clone := *c
	r.campaigns[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCampaignRepo) FindByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCampaignRepo) List(_ context.Context) ([]*domain.Campaign, error) {
	out := make([]*domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCampaignRepo) Replace(_ context.Context, id string, c *domain.Campaign) (*domain.Campaign, error) {
	stored, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	next := *c
	next.ID = stored.ID
	next.CreatedBy = stored.CreatedBy
	next.CreatedAt = stored.CreatedAt
	if next.Status == "" {
		next.Status = stored.Status
	}
	r.campaigns[id] = &next
	out := next
	return &out, nil
}

// ── tasks ─────────────────────────────────────────────────────────────────────

type stubTaskRepo struct {
	tasks       map[string]*domain.Task
	creates     int
	unassignErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.creates++
	clone := *t
	r.tasks[t.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	out := []*domain.Task{}
	for _, t := range r.tasks {
		if filter.CampaignID != "" && t.CampaignID != filter.CampaignID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, patch domain.TaskPatch, at time.Time) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.AssigneeID != nil {
		t.AssigneeID = patch.AssigneeID
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		t.ActualHours = patch.ActualHours
	}
	t.UpdatedAt = at
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *stubTaskRepo) UnassignUser(_ context.Context, userID string) (int64, error) {
	if r.unassignErr != nil {
		return 0, r.unassignErr
	}
	var n int64
	for _, t := range r.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			t.AssigneeID = nil
			n++
		}
	}
	return n, nil
}

// ── stats ─────────────────────────────────────────────────────────────────────

// stubStatsRepo tallies over the other stubs so tests can compare the
// dashboard against the seeded records.
type stubStatsRepo struct {
	users     *stubUserRepo
	campaigns *stubCampaignRepo
	tasks     *stubTaskRepo
	err       error
}

func (r *stubStatsRepo) CountCampaignsByStatus(_ context.Context, status domain.CampaignStatus) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, c := range r.campaigns.campaigns {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubStatsRepo) CountTasksByStatus(_ context.Context, status domain.TaskStatus) (int64, error) {
	var n int64
	for _, t := range r.tasks.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubStatsRepo) CountOverdueTasks(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range r.tasks.tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != domain.TaskCompleted {
			n++
		}
	}
	return n, nil
}

func (r *stubStatsRepo) CountActiveUsers(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

// ── throttle ──────────────────────────────────────────────────────────────────

type stubThrottle struct {
	limit    int
	failures map[string]int
	err      error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{limit: limit, failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, email string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}
