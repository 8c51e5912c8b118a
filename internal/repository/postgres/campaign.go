// Package postgres implements the service repository interfaces against
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func (r *CampaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, subject, COALESCE(html_content,''), COALESCE(cc_email,''),
		       COALESCE(bcc_email,''), status, scheduled_at,
		       sent_count, open_count, click_count, bounce_count,
		       created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Name, &c.Subject, &c.HTMLContent, &c.CCEmail,
		&c.BCCEmail, &c.Status, &c.ScheduledAt,
		&c.SentCount, &c.OpenCount, &c.ClickCount, &c.BounceCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT contact_id FROM campaign_recipients
		WHERE campaign_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get campaign recipients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var contactID string
		if err := rows.Scan(&contactID); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		c.RecipientIDs = append(c.RecipientIDs, contactID)
	}
	return c, rows.Err()
}

func (r *CampaignRepo) List(ctx context.Context, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM campaigns`
	args := []interface{}{}
	if f.Status != "" {
		countQ += " WHERE status = $1"
		args = append(args, f.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	q := `
		SELECT id, name, subject, status, scheduled_at,
		       sent_count, open_count, click_count, bounce_count, created_at
		FROM campaigns`
	qArgs := []interface{}{}
	qIdx := 1
	if f.Status != "" {
		q += fmt.Sprintf(" WHERE status = $%d", qIdx)
		qArgs = append(qArgs, f.Status)
		qIdx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", qIdx, qIdx+1)
	qArgs = append(qArgs, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, qArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Subject, &c.Status, &c.ScheduledAt,
			&c.SentCount, &c.OpenCount, &c.ClickCount, &c.BounceCount, &c.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO campaigns
			(id, name, subject, html_content, cc_email, bcc_email, status,
			 scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, c.ID, c.Name, c.Subject, c.HTMLContent, c.CCEmail, c.BCCEmail,
		c.Status, c.ScheduledAt)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}

	if err := insertRecipients(ctx, tx, c.ID, c.RecipientIDs); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}
	return c.ID, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id string, u campaign.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Subject != nil {
		add("subject", *u.Subject)
	}
	if u.HTMLContent != nil {
		add("html_content", *u.HTMLContent)
	}
	if u.CCEmail != nil {
		add("cc_email", *u.CCEmail)
	}
	if u.BCCEmail != nil {
		add("bcc_email", *u.BCCEmail)
	}
	if u.ScheduledAt != nil {
		add("scheduled_at", *u.ScheduledAt)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	defer tx.Rollback()

	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		q := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d",
			strings.Join(sets, ", "), idx)
		args = append(args, id)

		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("update campaign: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return campaign.ErrNotFound
		}
	}

	if u.RecipientIDs != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM campaign_recipients WHERE campaign_id = $1`, id); err != nil {
			return fmt.Errorf("replace recipients: %w", err)
		}
		if err := insertRecipients(ctx, tx, id, *u.RecipientIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) SetSentCount(ctx context.Context, id string, count int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET sent_count = $1, updated_at = NOW() WHERE id = $2
	`, count, id)
	if err != nil {
		return fmt.Errorf("set sent count: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) IncrementCounter(ctx context.Context, id string, counter campaign.Counter) error {
	// Counter values are our own constants, never user input.
	q := fmt.Sprintf(`UPDATE campaigns SET %s = %s + 1, updated_at = NOW() WHERE id = $1`,
		counter, counter)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("increment %s: %w", counter, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) ListDue(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, subject, status, scheduled_at
		FROM campaigns
		WHERE status = 'scheduled' AND scheduled_at <= $1
		ORDER BY scheduled_at
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list due campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.Status, &c.ScheduledAt); err != nil {
			return nil, fmt.Errorf("scan due campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func insertRecipients(ctx context.Context, tx *sql.Tx, campaignID string, contactIDs []string) error {
	if len(contactIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO campaign_recipients (campaign_id, contact_id, position)
		SELECT $1, contact_id, ord - 1
		FROM unnest($2::uuid[]) WITH ORDINALITY AS t(contact_id, ord)
		ON CONFLICT DO NOTHING
	`, campaignID, pq.Array(contactIDs))
	if err != nil {
		return fmt.Errorf("insert recipients: %w", err)
	}
	return nil
}
