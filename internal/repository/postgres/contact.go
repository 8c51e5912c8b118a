package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
)

// ContactRepo implements contact.Repository against PostgreSQL.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const uniqueViolation = "23505"

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, email, name, company, tags, is_subscribed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, c.ID, c.Email, c.Name, c.Company, pq.Array(c.Tags), c.Subscribed)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return "", contact.ErrDuplicateEmail
		}
		return "", fmt.Errorf("create contact: %w", err)
	}
	return c.ID, nil
}

func (r *ContactRepo) Get(ctx context.Context, id string) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, company, tags, is_subscribed, created_at
		FROM contacts WHERE id = $1
	`, id).Scan(&c.ID, &c.Email, &c.Name, &c.Company, pq.Array(&c.Tags), &c.Subscribed, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	return r.query(ctx, `
		SELECT id, email, name, company, tags, is_subscribed, created_at
		FROM contacts ORDER BY created_at DESC
	`)
}

func (r *ContactRepo) ListSubscribed(ctx context.Context) ([]domain.Contact, error) {
	return r.query(ctx, `
		SELECT id, email, name, company, tags, is_subscribed, created_at
		FROM contacts WHERE is_subscribed ORDER BY created_at
	`)
}

func (r *ContactRepo) GetSubscribedByIDs(ctx context.Context, ids []string) ([]domain.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.query(ctx, `
		SELECT id, email, name, company, tags, is_subscribed, created_at
		FROM contacts WHERE is_subscribed AND id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	// Preserve the caller's recipient ordering.
	byID := make(map[string]domain.Contact, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	var out []domain.Contact
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ContactRepo) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET is_subscribed = $1 WHERE id = $2
	`, subscribed, id)
	if err != nil {
		return fmt.Errorf("set subscribed: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) query(ctx context.Context, q string, args ...interface{}) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.Company,
			pq.Array(&c.Tags), &c.Subscribed, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
