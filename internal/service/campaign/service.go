package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// Service implements campaign business logic on top of the repository.
// All public methods are safe for concurrent use if the underlying
// repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, id)
}

// List returns campaigns matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, f)
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Name         string     `json:"name"`
	Subject      string     `json:"subject"`
	HTMLContent  string     `json:"html_content"`
	CCEmail      string     `json:"cc_email"`
	BCCEmail     string     `json:"bcc_email"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	RecipientIDs []string   `json:"recipient_ids"`
}

// Create validates and persists a new campaign. Campaigns with a scheduled
// time start in scheduled status, everything else starts as a draft.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if input.CCEmail != "" && !domain.ValidEmail(input.CCEmail) {
		return nil, fmt.Errorf("cc_email is not a valid address")
	}
	if input.BCCEmail != "" && !domain.ValidEmail(input.BCCEmail) {
		return nil, fmt.Errorf("bcc_email is not a valid address")
	}

	status := domain.CampaignDraft
	if input.ScheduledAt != nil {
		status = domain.CampaignScheduled
	}

	c := &domain.Campaign{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Subject:      input.Subject,
		HTMLContent:  input.HTMLContent,
		CCEmail:      input.CCEmail,
		BCCEmail:     input.BCCEmail,
		ScheduledAt:  input.ScheduledAt,
		RecipientIDs: input.RecipientIDs,
		Status:       status,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update modifies mutable campaign fields. Campaigns that already went out
// are immutable.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.IsTerminal() {
		return ErrInvalidTransition
	}
	return s.repo.Update(ctx, id, u)
}

// Schedule sets a future send time and moves the campaign to scheduled.
func (s *Service) Schedule(ctx context.Context, id string, at time.Time) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.Status != domain.CampaignDraft && c.Status != domain.CampaignScheduled {
		return ErrInvalidTransition
	}
	if err := s.repo.Update(ctx, id, UpdateFields{ScheduledAt: &at}); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, domain.CampaignScheduled)
}

// RecordOpen bumps the campaign open counter.
func (s *Service) RecordOpen(ctx context.Context, id string) error {
	return s.repo.IncrementCounter(ctx, id, CounterOpen)
}

// RecordClick bumps the campaign click counter.
func (s *Service) RecordClick(ctx context.Context, id string) error {
	return s.repo.IncrementCounter(ctx, id, CounterClick)
}
