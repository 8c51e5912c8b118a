package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

func TestCampaignRepoGetNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM campaigns").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewCampaignRepo(db)
	_, err := repo.Get(context.Background(), "missing")
	if err != campaign.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCampaignRepoGetLoadsRecipients(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM campaigns").
		WithArgs("camp-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "subject", "html_content", "cc_email", "bcc_email",
			"status", "scheduled_at", "sent_count", "open_count", "click_count",
			"bounce_count", "created_at", "updated_at",
		}).AddRow("camp-1", "Launch", "Hi", "<p>x</p>", "", "", "draft", nil,
			0, 0, 0, 0, now, now))
	mock.ExpectQuery("SELECT contact_id FROM campaign_recipients").
		WithArgs("camp-1").
		WillReturnRows(sqlmock.NewRows([]string{"contact_id"}).
			AddRow("contact-1").AddRow("contact-2"))

	repo := NewCampaignRepo(db)
	c, err := repo.Get(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.RecipientIDs) != 2 || c.RecipientIDs[0] != "contact-1" {
		t.Fatalf("recipients: %v", c.RecipientIDs)
	}
}

func TestCampaignRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE campaigns SET status").
		WithArgs(string(domain.CampaignSending), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCampaignRepo(db)
	err := repo.UpdateStatus(context.Background(), "missing", domain.CampaignSending)
	if err != campaign.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCampaignRepoIncrementCounter(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE campaigns SET open_count = open_count \\+ 1").
		WithArgs("camp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCampaignRepo(db)
	if err := repo.IncrementCounter(context.Background(), "camp-1", campaign.CounterOpen); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCampaignRepoListDue(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	at := now.Add(-time.Minute)
	mock.ExpectQuery("SELECT (.+) FROM campaigns").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subject", "status", "scheduled_at"}).
			AddRow("camp-1", "Launch", "Hi", "scheduled", at))

	repo := NewCampaignRepo(db)
	due, err := repo.ListDue(context.Background(), now)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 1 || due[0].ID != "camp-1" {
		t.Fatalf("due: %v", due)
	}
}

func TestContactRepoCreate(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO contacts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewContactRepo(db)
	id, err := repo.Create(context.Background(), &domain.Contact{
		Email: "a@example.com", Subscribed: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
}

func TestContactRepoSetSubscribedNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE contacts SET is_subscribed").
		WithArgs(false, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewContactRepo(db)
	if err := repo.SetSubscribed(context.Background(), "missing", false); err != contact.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailLogRepoMarkOpenedFirstOnly(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	at := time.Now()
	mock.ExpectExec("UPDATE email_logs SET opened_at").
		WithArgs(at, string(domain.EmailOpened), "log-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE email_logs SET opened_at").
		WithArgs(at, string(domain.EmailOpened), "log-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEmailLogRepo(db)
	first, err := repo.MarkOpened(context.Background(), "log-1", at)
	if err != nil || !first {
		t.Fatalf("first open: first=%v err=%v", first, err)
	}
	first, err = repo.MarkOpened(context.Background(), "log-1", at)
	if err != nil || first {
		t.Fatalf("repeat open: first=%v err=%v", first, err)
	}
}

func TestEmailLogRepoCreate(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	sentAt := time.Now()
	mock.ExpectExec("INSERT INTO email_logs").
		WithArgs("log-1", "camp-1", "contact-1", string(domain.EmailSent), sentAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewEmailLogRepo(db)
	err := repo.Create(context.Background(), &domain.EmailLogEntry{
		ID: "log-1", CampaignID: "camp-1", ContactID: "contact-1",
		Status: domain.EmailSent, SentAt: sentAt,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
