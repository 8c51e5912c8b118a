package domain

import (
	"time"
)

// CampaignStatus enumerates the lifecycle states of a campaign.
// Transitions are one-directional: draft -> scheduled -> sending -> sent.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSending   CampaignStatus = "sending"
	CampaignSent      CampaignStatus = "sent"
)

// Campaign represents a bulk email campaign: one subject/body sent to a
// recipient set, with aggregate delivery counters maintained by dispatch
// and tracking.
type Campaign struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Subject     string         `json:"subject" db:"subject"`
	HTMLContent string         `json:"html_content" db:"html_content"`
	CCEmail     string         `json:"cc_email" db:"cc_email"`
	BCCEmail    string         `json:"bcc_email" db:"bcc_email"`
	Status      CampaignStatus `json:"status" db:"status"`
	ScheduledAt *time.Time     `json:"scheduled_at" db:"scheduled_at"`

	// Explicit recipient set. Empty means "all subscribed contacts".
	RecipientIDs []string `json:"recipient_ids"`

	SentCount   int `json:"sent_count" db:"sent_count"`
	OpenCount   int `json:"open_count" db:"open_count"`
	ClickCount  int `json:"click_count" db:"click_count"`
	BounceCount int `json:"bounce_count" db:"bounce_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsTerminal returns true once the campaign has been dispatched. A terminal
// campaign must reject any further dispatch request.
func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignSent
}

// Rates returns the campaign's aggregate rates from its counters.
func (c *Campaign) Rates() Rates {
	return Rollup(c.SentCount, c.OpenCount, c.ClickCount, c.BounceCount)
}
