package api

import (
	"net/http"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/httputil"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
)

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// GetDashboard handles GET /api/dashboard: fleet-wide totals plus the
// aggregate engagement rates across every campaign.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	campaigns, total, err := h.campaigns.List(r.Context(), campaign.ListFilter{Limit: 1000})
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	var sent, opens, clicks, bounces, subscribed int
	byStatus := map[domain.CampaignStatus]int{}
	for _, c := range campaigns {
		sent += c.SentCount
		opens += c.OpenCount
		clicks += c.ClickCount
		bounces += c.BounceCount
		byStatus[c.Status]++
	}
	for _, c := range contacts {
		if c.Subscribed {
			subscribed++
		}
	}

	httputil.OK(w, map[string]any{
		"campaigns": map[string]any{
			"total":     total,
			"by_status": byStatus,
		},
		"contacts": map[string]any{
			"total":      len(contacts),
			"subscribed": subscribed,
		},
		"emails": map[string]any{
			"sent":    sent,
			"opens":   opens,
			"clicks":  clicks,
			"bounces": bounces,
			"rates":   domain.Rollup(sent, opens, clicks, bounces),
		},
	})
}
