package contact

import (
	"context"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// Repository defines the data access contract for contacts.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a contact. Returns ErrDuplicateEmail when the
	// normalized email already exists.
	Create(ctx context.Context, c *domain.Contact) (string, error)

	// Get returns one contact. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Contact, error)

	// List returns all contacts, newest first.
	List(ctx context.Context) ([]domain.Contact, error)

	// ListSubscribed returns every subscribed contact in creation order.
	ListSubscribed(ctx context.Context) ([]domain.Contact, error)

	// GetSubscribedByIDs resolves an explicit recipient set, dropping
	// unknown IDs and unsubscribed contacts, preserving input order.
	GetSubscribedByIDs(ctx context.Context, ids []string) ([]domain.Contact, error)

	// SetSubscribed flips the subscription flag.
	SetSubscribed(ctx context.Context, id string, subscribed bool) error
}
