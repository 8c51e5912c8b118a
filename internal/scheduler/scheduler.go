// Package scheduler dispatches scheduled campaigns when they come due. It
// polls on a fixed interval; exactness is bounded by the interval, and the
// dispatch lock keeps overlapping ticks harmless.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/dispatch"
)

// CampaignSource lists campaigns whose scheduled time has arrived.
type CampaignSource interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.Campaign, error)
}

// Dispatcher runs a campaign send.
type Dispatcher interface {
	Send(ctx context.Context, campaignID string, opts dispatch.Options) (*dispatch.Result, error)
}

// Scheduler periodically scans for due campaigns and dispatches them.
type Scheduler struct {
	campaigns  CampaignSource
	dispatcher Dispatcher
	interval   time.Duration
	cron       *cron.Cron
}

// New creates a scheduler that scans every interval.
func New(campaigns CampaignSource, dispatcher Dispatcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		campaigns:  campaigns,
		dispatcher: dispatcher,
		interval:   interval,
		cron:       cron.New(),
	}
}

// Start begins scanning in the background. ctx bounds each tick's work, not
// the scheduler's lifetime; call Stop to shut down.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.Tick(ctx) }); err != nil {
		return fmt.Errorf("scheduler: registering scan job: %w", err)
	}
	s.cron.Start()
	logger.Info("scheduler started", "interval", s.interval.String())
	return nil
}

// Stop halts scanning and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// Tick runs one scan. A campaign whose dispatch is already in flight or
// already finished is skipped quietly; anything else failing is logged and
// does not stop the remaining due campaigns.
func (s *Scheduler) Tick(ctx context.Context) {
	due, err := s.campaigns.ListDue(ctx, time.Now())
	if err != nil {
		logger.Error("scanning for due campaigns failed", "error", err)
		return
	}

	for _, c := range due {
		res, err := s.dispatcher.Send(ctx, c.ID, dispatch.Options{})
		switch {
		case errors.Is(err, dispatch.ErrDispatchInProgress), errors.Is(err, dispatch.ErrAlreadySent):
			logger.Debug("skipping due campaign", "campaign_id", c.ID, "reason", err.Error())
		case err != nil:
			logger.Error("scheduled dispatch failed", "campaign_id", c.ID, "error", err)
		default:
			logger.Info("scheduled campaign dispatched",
				"campaign_id", c.ID, "sent", res.Sent, "failed", res.Failed)
		}
	}
}
