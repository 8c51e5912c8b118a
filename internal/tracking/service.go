package tracking

import (
	"context"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// LogRepository is the slice of delivery-log persistence tracking needs.
type LogRepository interface {
	Get(ctx context.Context, id string) (*domain.EmailLogEntry, error)

	// MarkOpened stamps OpenedAt if it is still unset. Returns true only for
	// that first open.
	MarkOpened(ctx context.Context, id string, at time.Time) (bool, error)

	// MarkClicked stamps ClickedAt if it is still unset. Returns true only
	// for that first click.
	MarkClicked(ctx context.Context, id string, at time.Time) (bool, error)
}

// CampaignRecorder bumps campaign aggregate counters.
type CampaignRecorder interface {
	RecordOpen(ctx context.Context, campaignID string) error
	RecordClick(ctx context.Context, campaignID string) error
}

// Service resolves tracking hits against the delivery log.
type Service struct {
	logs      LogRepository
	campaigns CampaignRecorder
}

// NewService creates a tracking service.
func NewService(logs LogRepository, campaigns CampaignRecorder) *Service {
	return &Service{logs: logs, campaigns: campaigns}
}

// RecordOpen handles one pixel hit. Unknown log IDs are ignored; the pixel
// must render no matter what.
func (s *Service) RecordOpen(ctx context.Context, logID string) {
	entry, err := s.logs.Get(ctx, logID)
	if err != nil {
		logger.Debug("open hit for unknown log entry", "log_id", logID)
		return
	}

	first, err := s.logs.MarkOpened(ctx, logID, time.Now().UTC())
	if err != nil {
		logger.Error("marking open failed", "log_id", logID, "error", err)
		return
	}
	if !first {
		return
	}
	if err := s.campaigns.RecordOpen(ctx, entry.CampaignID); err != nil {
		logger.Error("recording campaign open failed", "campaign_id", entry.CampaignID, "error", err)
	}
}

// RecordClick handles one click hit before the redirect.
func (s *Service) RecordClick(ctx context.Context, logID string) {
	entry, err := s.logs.Get(ctx, logID)
	if err != nil {
		logger.Debug("click hit for unknown log entry", "log_id", logID)
		return
	}

	first, err := s.logs.MarkClicked(ctx, logID, time.Now().UTC())
	if err != nil {
		logger.Error("marking click failed", "log_id", logID, "error", err)
		return
	}
	if !first {
		return
	}
	if err := s.campaigns.RecordClick(ctx, entry.CampaignID); err != nil {
		logger.Error("recording campaign click failed", "campaign_id", entry.CampaignID, "error", err)
	}
}
