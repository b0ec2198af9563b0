package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

// Timestamp accepts RFC 3339, naive ISO 8601 (read as UTC) and bare dates,
// so browser date and datetime-local inputs can be sent as they are.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// timePtr returns nil for a nil Timestamp.
func (t *Timestamp) timePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// ── auth ──────────────────────────────────────────────────────────────────────

type registerRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role" validate:"required,role" swaggertype:"string" enums:"admin,account_manager,creative_director,copywriter,designer,analyst"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ── campaigns ─────────────────────────────────────────────────────────────────

// campaignRequest is the body for both create and full update.
type campaignRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Description  *string                `json:"description"`
	CampaignType domain.CampaignType    `json:"campaign_type" validate:"required,campaign_type" swaggertype:"string"`
	Status       *domain.CampaignStatus `json:"status" validate:"omitempty,campaign_status" swaggertype:"string"`
	ClientName   string                 `json:"client_name" validate:"required"`
	Budget       *float64               `json:"budget" validate:"omitempty,gte=0"`
	StartDate    *Timestamp             `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate      *Timestamp             `json:"end_date" swaggertype:"string" format:"date-time"`
	AssignedTeam []string               `json:"assigned_team"`
}

func (r campaignRequest) toInput() ports.CampaignInput {
	return ports.CampaignInput{
		Title:        r.Title,
		Description:  r.Description,
		CampaignType: r.CampaignType,
		Status:       r.Status,
		ClientName:   r.ClientName,
		Budget:       r.Budget,
		StartDate:    r.StartDate.timePtr(),
		EndDate:      r.EndDate.timePtr(),
		AssignedTeam: r.AssignedTeam,
	}
}

// ── tasks ─────────────────────────────────────────────────────────────────────

type createTaskRequest struct {
	Title          string               `json:"title" validate:"required"`
	Description    *string              `json:"description"`
	CampaignID     string               `json:"campaign_id" validate:"required"`
	AssigneeID     *string              `json:"assignee_id"`
	Priority       *domain.TaskPriority `json:"priority" validate:"omitempty,task_priority" swaggertype:"string"`
	DueDate        *Timestamp           `json:"due_date" swaggertype:"string" format:"date-time"`
	EstimatedHours *float64             `json:"estimated_hours" validate:"omitempty,gte=0"`
	Dependencies   []string             `json:"dependencies"`
}

func (r createTaskRequest) toInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		CampaignID:     r.CampaignID,
		AssigneeID:     r.AssigneeID,
		Priority:       r.Priority,
		DueDate:        r.DueDate.timePtr(),
		EstimatedHours: r.EstimatedHours,
		Dependencies:   r.Dependencies,
	}
}

// updateTaskRequest is a partial update; null or absent fields are ignored.
type updateTaskRequest struct {
	Title          *string              `json:"title" validate:"omitempty,min=1"`
	Description    *string              `json:"description"`
	AssigneeID     *string              `json:"assignee_id"`
	Status         *domain.TaskStatus   `json:"status" validate:"omitempty,task_status" swaggertype:"string"`
	Priority       *domain.TaskPriority `json:"priority" validate:"omitempty,task_priority" swaggertype:"string"`
	DueDate        *Timestamp           `json:"due_date" swaggertype:"string" format:"date-time"`
	EstimatedHours *float64             `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *float64             `json:"actual_hours" validate:"omitempty,gte=0"`
}

func (r updateTaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:          r.Title,
		Description:    r.Description,
		AssigneeID:     r.AssigneeID,
		Status:         r.Status,
		Priority:       r.Priority,
		DueDate:        r.DueDate.timePtr(),
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
	}
}

// ── team ──────────────────────────────────────────────────────────────────────

// updateMemberRequest lists every mutable member field. Unknown fields are
// rejected.
type updateMemberRequest struct {
	Name      *string      `json:"name" validate:"omitempty,min=1"`
	Email     *string      `json:"email" validate:"omitempty,email"`
	Role      *domain.Role `json:"role" validate:"omitempty,role" swaggertype:"string"`
	AvatarURL *string      `json:"avatar_url"`
	IsActive  *bool        `json:"is_active"`
}

func (r updateMemberRequest) toUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		AvatarURL: r.AvatarURL,
		IsActive:  r.IsActive,
	}
}

// ── shared ────────────────────────────────────────────────────────────────────

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
