package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// EmailLogRepo persists per-recipient delivery log entries.
type EmailLogRepo struct{ db *sql.DB }

// NewEmailLogRepo creates a Postgres-backed delivery log repository.
func NewEmailLogRepo(db *sql.DB) *EmailLogRepo { return &EmailLogRepo{db: db} }

func (r *EmailLogRepo) Create(ctx context.Context, e *domain.EmailLogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_logs (id, campaign_id, contact_id, status, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.CampaignID, e.ContactID, e.Status, e.SentAt)
	if err != nil {
		return fmt.Errorf("create email log: %w", err)
	}
	return nil
}

func (r *EmailLogRepo) Get(ctx context.Context, id string) (*domain.EmailLogEntry, error) {
	e := &domain.EmailLogEntry{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, contact_id, status, sent_at, opened_at, clicked_at
		FROM email_logs WHERE id = $1
	`, id).Scan(&e.ID, &e.CampaignID, &e.ContactID, &e.Status, &e.SentAt, &e.OpenedAt, &e.ClickedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get email log: %w", err)
	}
	return e, nil
}

// MarkOpened stamps the first open. The WHERE clause makes repeat opens
// no-ops without any read-modify-write race.
func (r *EmailLogRepo) MarkOpened(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_logs SET opened_at = $1, status = $2
		WHERE id = $3 AND opened_at IS NULL
	`, at, domain.EmailOpened, id)
	if err != nil {
		return false, fmt.Errorf("mark opened: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkClicked stamps the first click, same race-free shape as MarkOpened.
func (r *EmailLogRepo) MarkClicked(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_logs SET clicked_at = $1, status = $2
		WHERE id = $3 AND clicked_at IS NULL
	`, at, domain.EmailClicked, id)
	if err != nil {
		return false, fmt.Errorf("mark clicked: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListByCampaign returns a campaign's delivery log, most recent first.
func (r *EmailLogRepo) ListByCampaign(ctx context.Context, campaignID string) ([]domain.EmailLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, contact_id, status, sent_at, opened_at, clicked_at
		FROM email_logs WHERE campaign_id = $1 ORDER BY sent_at DESC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	var out []domain.EmailLogEntry
	for rows.Next() {
		var e domain.EmailLogEntry
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.ContactID, &e.Status,
			&e.SentAt, &e.OpenedAt, &e.ClickedAt); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
