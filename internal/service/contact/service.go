package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// Service implements contact business logic on top of the repository.
type Service struct {
	repo Repository
}

// NewService creates a contact service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields for creating a new contact.
type CreateInput struct {
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Company string   `json:"company"`
	Tags    []string `json:"tags"`
}

// Create validates the email and persists a new subscribed contact.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Contact, error) {
	if !domain.ValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	c := &domain.Contact{
		ID:         uuid.New().String(),
		Email:      domain.NormalizeEmail(input.Email),
		Name:       input.Name,
		Company:    input.Company,
		Tags:       input.Tags,
		Subscribed: true,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Get returns a single contact.
func (s *Service) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.Get(ctx, id)
}

// List returns all contacts.
func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

// Unsubscribe marks a contact as unsubscribed, excluding it from all
// future recipient resolution.
func (s *Service) Unsubscribe(ctx context.Context, id string) error {
	return s.repo.SetSubscribed(ctx, id, false)
}
