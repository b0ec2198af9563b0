package domain

import "time"

// CampaignType is the kind of engagement a campaign represents.
type CampaignType string

const (
	CampaignBrandLaunch      CampaignType = "brand_launch"
	CampaignDigitalMarketing CampaignType = "digital_marketing"
	CampaignContentStrategy  CampaignType = "content_strategy"
	CampaignSEO              CampaignType = "seo"
	CampaignPPC              CampaignType = "ppc"
	CampaignSocialMedia      CampaignType = "social_media"
	CampaignEmailMarketing   CampaignType = "email_marketing"
	CampaignPR               CampaignType = "pr"
	CampaignEvents           CampaignType = "events"
)

// AllCampaignTypes lists every campaign type in declaration order.
func AllCampaignTypes() []CampaignType {
	return []CampaignType{
		CampaignBrandLaunch, CampaignDigitalMarketing, CampaignContentStrategy,
		CampaignSEO, CampaignPPC, CampaignSocialMedia,
		CampaignEmailMarketing, CampaignPR, CampaignEvents,
	}
}

// Valid reports whether t is a known campaign type.
func (t CampaignType) Valid() bool {
	for _, known := range AllCampaignTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignPlanning  CampaignStatus = "planning"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// AllCampaignStatuses lists every campaign status in lifecycle order.
func AllCampaignStatuses() []CampaignStatus {
	return []CampaignStatus{CampaignPlanning, CampaignActive, CampaignPaused, CampaignCompleted}
}

// Valid reports whether s is a known campaign status.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignPlanning, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

// Campaign is a client engagement that groups tasks.
type Campaign struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description"`
	CampaignType CampaignType   `json:"campaign_type"`
	Status       CampaignStatus `json:"status"`
	ClientName   string         `json:"client_name"`
	Budget       *float64       `json:"budget"`
	StartDate    *time.Time     `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	AssignedTeam []string       `json:"assigned_team"`
	CreatedBy    string         `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	UnparsedTimestamps map[string]string `json:"unparsed_timestamps,omitempty"`
}
