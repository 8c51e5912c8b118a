package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/invite"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/mail"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/distlock"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// CampaignStore is the slice of campaign persistence the engine needs.
type CampaignStore interface {
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	SetSentCount(ctx context.Context, id string, n int) error
}

// ContactStore resolves a campaign's recipient set.
type ContactStore interface {
	ListSubscribed(ctx context.Context) ([]domain.Contact, error)
	GetSubscribedByIDs(ctx context.Context, ids []string) ([]domain.Contact, error)
}

// LogStore records per-recipient delivery attempts.
type LogStore interface {
	Create(ctx context.Context, entry *domain.EmailLogEntry) error
}

// Sender delivers one built envelope.
type Sender interface {
	Send(ctx context.Context, env *mail.Envelope) error
}

// Decorator rewrites the rendered HTML just before the message is built.
// Tracking uses it to inject the open pixel and rewrite links; logID is the
// delivery log entry the decorated URLs point back to.
type Decorator func(html, campaignID, logID string) string

// Config wires an Engine's collaborators.
type Config struct {
	Campaigns CampaignStore
	Contacts  ContactStore
	Logs      LogStore
	Sender    Sender
	Renderer  *mail.Renderer
	Locks     distlock.Factory

	FromAddress string
	FromName    string

	// SendTimeout bounds each individual SMTP delivery. Zero means 30s.
	SendTimeout time.Duration

	// Decorate is optional; nil means messages go out unmodified.
	Decorate Decorator
}

// Engine executes campaign dispatches.
type Engine struct {
	cfg Config
}

// NewEngine creates a dispatch engine.
func NewEngine(cfg Config) *Engine {
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	return &Engine{cfg: cfg}
}

// Send dispatches one campaign. It attempts every resolved recipient exactly
// once and writes one log entry per attempt, success or failure. A single
// failed recipient never aborts the run.
//
// If ctx is cancelled mid-run, the loop stops between recipients and the
// campaign is finalized from the partial results: recipients already sent
// stay sent, and the status still advances to terminal.
func (e *Engine) Send(ctx context.Context, campaignID string, opts Options) (*Result, error) {
	lock := e.cfg.Locks.DispatchLock(campaignID)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring dispatch lock: %w", err)
	}
	if !acquired {
		return nil, ErrDispatchInProgress
	}
	defer lock.Release(context.WithoutCancel(ctx))

	c, err := e.cfg.Campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.IsTerminal() {
		return nil, ErrAlreadySent
	}

	recipients, err := e.resolveRecipients(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	if opts.TestMode {
		recipients = recipients[:1]
	} else if opts.BatchLimit > BatchAll && opts.BatchLimit < len(recipients) {
		recipients = recipients[:opts.BatchLimit]
	}

	if err := e.cfg.Campaigns.UpdateStatus(ctx, campaignID, domain.CampaignSending); err != nil {
		return nil, err
	}

	logger.Info("dispatch started",
		"campaign_id", campaignID,
		"recipients", len(recipients),
		"test_mode", opts.TestMode,
	)

	var sent, failed int
	for _, contact := range recipients {
		if ctx.Err() != nil {
			logger.Warn("dispatch interrupted, finalizing partial results",
				"campaign_id", campaignID, "sent", sent, "failed", failed)
			break
		}
		if e.deliverOne(ctx, c, contact, opts.Meeting) {
			sent++
		} else {
			failed++
		}
	}

	// Finalization must survive caller cancellation: the deliveries above
	// already happened, so the counters and terminal status must land.
	finalCtx := context.WithoutCancel(ctx)
	if err := e.cfg.Campaigns.SetSentCount(finalCtx, campaignID, sent); err != nil {
		logger.Error("persisting sent count failed", "campaign_id", campaignID, "error", err)
	}
	if err := e.cfg.Campaigns.UpdateStatus(finalCtx, campaignID, domain.CampaignSent); err != nil {
		logger.Error("finalizing campaign status failed", "campaign_id", campaignID, "error", err)
	}

	logger.Info("dispatch finished", "campaign_id", campaignID, "sent", sent, "failed", failed)

	return &Result{
		CampaignID:     campaignID,
		Sent:           sent,
		Failed:         failed,
		TotalAttempted: sent + failed,
		Message:        fmt.Sprintf("Campaign dispatched: %d sent, %d failed", sent, failed),
	}, nil
}

func (e *Engine) resolveRecipients(ctx context.Context, c *domain.Campaign) ([]domain.Contact, error) {
	if len(c.RecipientIDs) > 0 {
		return e.cfg.Contacts.GetSubscribedByIDs(ctx, c.RecipientIDs)
	}
	return e.cfg.Contacts.ListSubscribed(ctx)
}

// deliverOne runs the full per-recipient pipeline and records the attempt.
// It returns true when the message was accepted by the relay.
func (e *Engine) deliverOne(ctx context.Context, c *domain.Campaign, contact domain.Contact, meeting *Meeting) bool {
	logID := uuid.New().String()

	env, err := e.buildEnvelope(c, contact, meeting, logID)
	if err != nil {
		logger.Warn("message build failed",
			"campaign_id", c.ID, "recipient", contact.Email, "error", err)
		e.record(ctx, c.ID, contact.ID, logID, domain.EmailFailed)
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, e.cfg.SendTimeout)
	err = e.cfg.Sender.Send(sendCtx, env)
	cancel()
	if err != nil {
		logger.Warn("delivery failed",
			"campaign_id", c.ID, "recipient", contact.Email, "error", err)
		e.record(ctx, c.ID, contact.ID, logID, domain.EmailFailed)
		return false
	}

	e.record(ctx, c.ID, contact.ID, logID, domain.EmailSent)
	return true
}

func (e *Engine) buildEnvelope(c *domain.Campaign, contact domain.Contact, meeting *Meeting, logID string) (*mail.Envelope, error) {
	bindings := mail.ContactBindings(contact)

	html, err := e.cfg.Renderer.Render(c.HTMLContent, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering content: %w", err)
	}
	if e.cfg.Decorate != nil {
		html = e.cfg.Decorate(html, c.ID, logID)
	}

	subject, err := e.cfg.Renderer.Render(c.Subject, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering subject: %w", err)
	}

	msg := mail.Message{
		From:     e.cfg.FromAddress,
		FromName: e.cfg.FromName,
		To:       contact.Email,
		CC:       c.CCEmail,
		BCC:      c.BCCEmail,
		Subject:  subject,
		HTMLBody: html,
	}

	if meeting != nil {
		payload, err := invite.Generate(invite.Input{
			Title:         meeting.Title,
			Description:   meeting.Description,
			Start:         meeting.Start,
			End:           meeting.End,
			Organizer:     e.cfg.FromAddress,
			AttendeeEmail: contact.Email,
			AttendeeName:  contact.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("generating invite: %w", err)
		}
		msg.Invite = payload
	}

	return mail.BuildMessage(msg)
}

// record writes the delivery log entry. Log persistence failures are logged
// and swallowed; the delivery outcome itself is already decided.
func (e *Engine) record(ctx context.Context, campaignID, contactID, logID string, status domain.EmailLogStatus) {
	entry := &domain.EmailLogEntry{
		ID:         logID,
		CampaignID: campaignID,
		ContactID:  contactID,
		Status:     status,
		SentAt:     time.Now().UTC(),
	}
	if err := e.cfg.Logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		logger.Error("writing delivery log failed",
			"campaign_id", campaignID, "contact_id", contactID, "error", err)
	}
}
