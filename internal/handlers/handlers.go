package handlers

import (
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/report"
	"github.com/nahidhasan98/script-drift/internal/validation"
	"github.com/nahidhasan98/script-drift/internal/whatsapp"
)

// StatusProvider reports the notification channel state
type StatusProvider interface {
	Status() whatsapp.Status
}

// Options holds the optional handler dependencies
type Options struct {
	GitHubSecret string
	GiteaSecret  string
	Summarizer   string
	WhatsApp     StatusProvider
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service   *report.Service
	log       *logger.Logger
	validator *validation.Validator
	opts      Options
}

// New creates a new handler instance
func New(service *report.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{
		service:   service,
		log:       log,
		validator: validation.New(),
		opts:      opts,
	}
}
