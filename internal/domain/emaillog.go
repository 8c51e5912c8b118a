package domain

import "time"

// EmailLogStatus enumerates the delivery states of one email attempt.
type EmailLogStatus string

const (
	EmailSent      EmailLogStatus = "sent"
	EmailDelivered EmailLogStatus = "delivered"
	EmailOpened    EmailLogStatus = "opened"
	EmailClicked   EmailLogStatus = "clicked"
	EmailBounced   EmailLogStatus = "bounced"
	EmailFailed    EmailLogStatus = "failed"
)

// EmailLogEntry is the durable record of one delivery attempt to one
// recipient. Exactly one entry exists per (campaign, contact, attempt),
// created at send time regardless of outcome. Entries are append-only:
// tracking later fills OpenedAt/ClickedAt but never rewrites history.
type EmailLogEntry struct {
	ID         string         `json:"id" db:"id"`
	CampaignID string         `json:"campaign_id" db:"campaign_id"`
	ContactID  string         `json:"contact_id" db:"contact_id"`
	Status     EmailLogStatus `json:"status" db:"status"`
	SentAt     time.Time      `json:"sent_at" db:"sent_at"`
	OpenedAt   *time.Time     `json:"opened_at" db:"opened_at"`
	ClickedAt  *time.Time     `json:"clicked_at" db:"clicked_at"`
}
