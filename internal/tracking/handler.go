package tracking

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// 1x1 transparent GIF
var pixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00,
	0x80, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x2c,
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x02,
	0x02, 0x44, 0x01, 0x00, 0x3b,
}

// Unsubscriber flips a contact's subscription off.
type Unsubscriber interface {
	Unsubscribe(ctx context.Context, contactID string) error
}

// Handler serves the public tracking endpoints.
type Handler struct {
	svc      *Service
	contacts Unsubscriber
}

// NewHandler creates the tracking HTTP handler.
func NewHandler(svc *Service, contacts Unsubscriber) *Handler {
	return &Handler{svc: svc, contacts: contacts}
}

// Routes mounts the tracking endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/track/open/{logID}", h.HandleOpen)
	r.Get("/track/click/{logID}", h.HandleClick)
	r.Get("/track/unsubscribe/{contactID}", h.HandleUnsubscribe)
	return r
}

// HandleOpen records the open and always serves the pixel, even for garbage
// IDs. A broken image in the recipient's mail client is never acceptable.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	h.svc.RecordOpen(r.Context(), chi.URLParam(r, "logID"))
	h.servePixel(w)
}

// HandleClick records the click and redirects to the original target.
func (h *Handler) HandleClick(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		http.Error(w, "bad link", http.StatusBadRequest)
		return
	}

	h.svc.RecordClick(r.Context(), chi.URLParam(r, "logID"))
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// HandleUnsubscribe opts the contact out and confirms with a plain page.
func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Unsubscribe(r.Context(), chi.URLParam(r, "contactID")); err != nil {
		http.Error(w, "unknown contact", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;text-align:center;padding:50px;">
		<h1>You have been unsubscribed</h1>
		<p>You will no longer receive emails from us.</p>
	</body></html>`))
}

func (h *Handler) servePixel(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Write(pixelGIF)
}
