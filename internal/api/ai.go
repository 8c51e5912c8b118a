package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/ai"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/httputil"
)

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	CTALink  string `json:"cta_link"`
}

// GenerateContent handles POST /api/ai/generate: it turns a free-form prompt
// into a structured template and a ready-to-send HTML body.
func (h *Handlers) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		httputil.BadRequest(w, "prompt is required")
		return
	}

	tpl, err := h.generator.GenerateTemplate(r.Context(), ai.Request{
		Prompt:   req.Prompt,
		Provider: req.Provider,
		Model:    req.Model,
	})
	if errors.Is(err, ai.ErrMissingAPIKey) {
		httputil.Error(w, http.StatusServiceUnavailable, "ai provider not configured")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"template": tpl,
		"html":     ai.BuildHTML(tpl, req.CTALink, h.company),
	})
}

type meetingEmailRequest struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Notes    string    `json:"notes"`
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
}

// GenerateMeetingEmail handles POST /api/ai/meeting-email: structured meeting
// details become the invitation email body.
func (h *Handlers) GenerateMeetingEmail(w http.ResponseWriter, r *http.Request) {
	var req meetingEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" || req.Start.IsZero() || req.End.IsZero() {
		httputil.BadRequest(w, "title, start and end are required")
		return
	}

	tpl, err := h.generator.GenerateTemplate(r.Context(), ai.Request{
		Prompt:   ai.MeetingPrompt(req.Title, req.Start, req.End, req.Notes),
		Provider: req.Provider,
		Model:    req.Model,
	})
	if errors.Is(err, ai.ErrMissingAPIKey) {
		httputil.Error(w, http.StatusServiceUnavailable, "ai provider not configured")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"template": tpl})
}
