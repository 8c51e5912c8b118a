package dispatch

import "time"

// BatchAll disables batch truncation: every resolved recipient is attempted.
const BatchAll = 0

// Options tunes a single dispatch run.
type Options struct {
	// TestMode truncates the resolved recipient set to its first contact, so
	// a campaign can be verified end to end with one real delivery.
	TestMode bool

	// BatchLimit caps the number of recipients attempted in this run.
	// BatchAll (zero) means no cap.
	BatchLimit int

	// Meeting, when set, attaches a calendar invite to every message. Each
	// recipient gets an independent invite with its own UID.
	Meeting *Meeting
}

// Meeting describes the event behind an invite campaign. Times may be in any
// zone; invites are encoded in UTC.
type Meeting struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// Result summarizes a completed dispatch run.
type Result struct {
	CampaignID     string `json:"campaign_id"`
	Sent           int    `json:"sent"`
	Failed         int    `json:"failed"`
	TotalAttempted int    `json:"total_attempted"`
	Message        string `json:"message"`
}
