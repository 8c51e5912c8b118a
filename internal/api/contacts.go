package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/httputil"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
)

// ListContacts handles GET /api/contacts.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"contacts": contacts, "total": len(contacts)})
}

// CreateContact handles POST /api/contacts.
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	var input contact.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.contacts.Create(r.Context(), input)
	switch {
	case errors.Is(err, contact.ErrInvalidEmail):
		httputil.BadRequest(w, "invalid email address")
	case errors.Is(err, contact.ErrDuplicateEmail):
		httputil.Conflict(w, "email already exists")
	case err != nil:
		httputil.InternalError(w, err)
	default:
		httputil.Created(w, c)
	}
}

// GetContact handles GET /api/contacts/{id}.
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, contact.ErrNotFound) {
		httputil.NotFound(w, "contact not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, c)
}

// UnsubscribeContact handles POST /api/contacts/{id}/unsubscribe.
func (h *Handlers) UnsubscribeContact(w http.ResponseWriter, r *http.Request) {
	err := h.contacts.Unsubscribe(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, contact.ErrNotFound) {
		httputil.NotFound(w, "contact not found")
		return
	}
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]string{"status": "unsubscribed"})
}

// ImportContacts handles POST /api/contacts/import. The CSV arrives either as
// a multipart "file" field or as the raw request body.
func (h *Handlers) ImportContacts(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			httputil.BadRequest(w, "missing file field")
			return
		}
		defer file.Close()
		reader = file
	}

	res, err := h.contacts.ImportCSV(r.Context(), reader)
	if err != nil {
		httputil.BadRequest(w, "could not parse csv: "+err.Error())
		return
	}
	httputil.OK(w, res)
}
