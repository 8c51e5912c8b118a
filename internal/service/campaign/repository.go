package campaign

import (
	"context"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// Counter names a campaign aggregate counter that tracking increments.
type Counter string

const (
	CounterOpen   Counter = "open_count"
	CounterClick  Counter = "click_count"
	CounterBounce Counter = "bounce_count"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single campaign with its recipient set. Returns
	// ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns campaigns matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]domain.Campaign, int, error)

	// Create inserts a new campaign and its recipient set, returning the ID.
	Create(ctx context.Context, c *domain.Campaign) (string, error)

	// Update applies the non-nil fields. Returns ErrNotFound for unknown IDs.
	Update(ctx context.Context, id string, u UpdateFields) error

	// UpdateStatus transitions a campaign's status.
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error

	// SetSentCount persists the final sent counter after a dispatch.
	SetSentCount(ctx context.Context, id string, n int) error

	// IncrementCounter bumps one aggregate counter by one.
	IncrementCounter(ctx context.Context, id string, counter Counter) error

	// ListDue returns scheduled campaigns whose scheduled_at is not after now.
	ListDue(ctx context.Context, now time.Time) ([]domain.Campaign, error)
}

// ListFilter controls pagination and filtering for campaign lists.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// UpdateFields holds the mutable fields for a campaign update.
// Nil fields are not applied.
type UpdateFields struct {
	Name         *string
	Subject      *string
	HTMLContent  *string
	CCEmail      *string
	BCCEmail     *string
	ScheduledAt  *time.Time
	RecipientIDs *[]string
}
