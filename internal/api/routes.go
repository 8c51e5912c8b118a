package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes builds the full router: the JSON API under /api plus any extra
// public routes (tracking endpoints) mounted at the root.
func SetupRoutes(h *Handlers, public http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboard)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.CreateCampaign)
			r.Get("/{id}", h.GetCampaign)
			r.Put("/{id}", h.UpdateCampaign)
			r.Post("/{id}/send", h.SendCampaign)
			r.Post("/{id}/schedule", h.ScheduleCampaign)
			r.Get("/{id}/logs", h.GetCampaignLogs)
			r.Get("/{id}/metrics", h.GetCampaignMetrics)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.ListContacts)
			r.Post("/", h.CreateContact)
			r.Post("/import", h.ImportContacts)
			r.Get("/{id}", h.GetContact)
			r.Post("/{id}/unsubscribe", h.UnsubscribeContact)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/generate", h.GenerateContent)
			r.Post("/meeting-email", h.GenerateMeetingEmail)
		})
	})

	if public != nil {
		r.Mount("/", public)
	}

	return r
}
