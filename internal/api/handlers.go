// Package api exposes the campaign platform over HTTP/JSON.
package api

import (
	"context"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/ai"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/dispatch"
)

// Dispatcher runs campaign sends.
type Dispatcher interface {
	Send(ctx context.Context, campaignID string, opts dispatch.Options) (*dispatch.Result, error)
}

// Generator produces AI campaign content.
type Generator interface {
	GenerateTemplate(ctx context.Context, req ai.Request) (*ai.Template, error)
}

// LogLister reads a campaign's delivery log.
type LogLister interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.EmailLogEntry, error)
}

// Handlers carries the services behind the HTTP endpoints.
type Handlers struct {
	campaigns  *campaign.Service
	contacts   *contact.Service
	dispatcher Dispatcher
	generator  Generator
	logs       LogLister
	company    string
}

// NewHandlers wires the API handlers.
func NewHandlers(
	campaigns *campaign.Service,
	contacts *contact.Service,
	dispatcher Dispatcher,
	generator Generator,
	logs LogLister,
	company string,
) *Handlers {
	return &Handlers{
		campaigns:  campaigns,
		contacts:   contacts,
		dispatcher: dispatcher,
		generator:  generator,
		logs:       logs,
		company:    company,
	}
}
