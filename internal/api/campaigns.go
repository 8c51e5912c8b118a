package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/httputil"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/dispatch"
)

// ListCampaigns handles GET /api/campaigns.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := campaign.ListFilter{Status: r.URL.Query().Get("status")}
	campaigns, total, err := h.campaigns.List(r.Context(), filter)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"campaigns": campaigns,
		"total":     total,
	})
}

// CreateCampaign handles POST /api/campaigns.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.campaigns.Create(r.Context(), input)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.Created(w, c)
}

// GetCampaign handles GET /api/campaigns/{id}.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, campaign.ErrNotFound) {
		httputil.NotFound(w, "campaign not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, c)
}

type updateRequest struct {
	Name         *string    `json:"name"`
	Subject      *string    `json:"subject"`
	HTMLContent  *string    `json:"html_content"`
	CCEmail      *string    `json:"cc_email"`
	BCCEmail     *string    `json:"bcc_email"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	RecipientIDs *[]string  `json:"recipient_ids"`
}

// UpdateCampaign handles PUT /api/campaigns/{id}. Absent fields are left
// untouched.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}

	err := h.campaigns.Update(r.Context(), chi.URLParam(r, "id"), campaign.UpdateFields{
		Name:         req.Name,
		Subject:      req.Subject,
		HTMLContent:  req.HTMLContent,
		CCEmail:      req.CCEmail,
		BCCEmail:     req.BCCEmail,
		ScheduledAt:  req.ScheduledAt,
		RecipientIDs: req.RecipientIDs,
	})
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		httputil.NotFound(w, "campaign not found")
	case errors.Is(err, campaign.ErrInvalidTransition):
		httputil.Conflict(w, "campaign already sent")
	case err != nil:
		httputil.InternalError(w, err)
	default:
		httputil.OK(w, map[string]string{"status": "updated"})
	}
}

type sendRequest struct {
	TestMode   bool              `json:"test_mode"`
	BatchLimit int               `json:"batch_limit"`
	Meeting    *dispatch.Meeting `json:"meeting,omitempty"`
}

// SendCampaign handles POST /api/campaigns/{id}/send.
func (h *Handlers) SendCampaign(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}
	}

	res, err := h.dispatcher.Send(r.Context(), chi.URLParam(r, "id"), dispatch.Options{
		TestMode:   req.TestMode,
		BatchLimit: req.BatchLimit,
		Meeting:    req.Meeting,
	})
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		httputil.NotFound(w, "campaign not found")
	case errors.Is(err, dispatch.ErrAlreadySent):
		httputil.Conflict(w, "campaign already sent")
	case errors.Is(err, dispatch.ErrDispatchInProgress):
		httputil.Conflict(w, "campaign dispatch already in progress")
	case errors.Is(err, dispatch.ErrNoRecipients):
		httputil.BadRequest(w, "campaign has no recipients")
	case err != nil:
		httputil.InternalError(w, err)
	default:
		httputil.OK(w, res)
	}
}

type scheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// ScheduleCampaign handles POST /api/campaigns/{id}/schedule.
func (h *Handlers) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduledAt.IsZero() {
		httputil.BadRequest(w, "scheduled_at is required")
		return
	}

	err := h.campaigns.Schedule(r.Context(), chi.URLParam(r, "id"), req.ScheduledAt)
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		httputil.NotFound(w, "campaign not found")
	case errors.Is(err, campaign.ErrInvalidTransition):
		httputil.Conflict(w, "campaign already sent")
	case err != nil:
		httputil.InternalError(w, err)
	default:
		httputil.OK(w, map[string]string{"status": "scheduled"})
	}
}

// GetCampaignLogs handles GET /api/campaigns/{id}/logs.
func (h *Handlers) GetCampaignLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.campaigns.Get(r.Context(), id); errors.Is(err, campaign.ErrNotFound) {
		httputil.NotFound(w, "campaign not found")
		return
	}

	entries, err := h.logs.ListByCampaign(r.Context(), id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"logs": entries, "total": len(entries)})
}

// GetCampaignMetrics handles GET /api/campaigns/{id}/metrics.
func (h *Handlers) GetCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, campaign.ErrNotFound) {
		httputil.NotFound(w, "campaign not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"campaign_id":  c.ID,
		"status":       c.Status,
		"sent_count":   c.SentCount,
		"open_count":   c.OpenCount,
		"click_count":  c.ClickCount,
		"bounce_count": c.BounceCount,
		"rates":        c.Rates(),
	})
}
