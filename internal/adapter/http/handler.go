package http

import (
	"log/slog"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/site"
	"portfolio-resume/internal/usecase"
	"portfolio-resume/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// Deps are the services the handlers call into.
type Deps struct {
	Drafts    wizard.Store
	Exporter  *usecase.Exporter
	Dashboard *usecase.DashboardService
	Contact   *usecase.ContactService
	Pages     *site.Pages
	Auth      *auth.Service
	Log       *slog.Logger
}

type Handler struct {
	drafts    wizard.Store
	exporter  *usecase.Exporter
	dashboard *usecase.DashboardService
	contact   *usecase.ContactService
	pages     *site.Pages
	auth      *auth.Service
	log       *slog.Logger
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		drafts:    d.Drafts,
		exporter:  d.Exporter,
		dashboard: d.Dashboard,
		contact:   d.Contact,
		pages:     d.Pages,
		auth:      d.Auth,
		log:       log.With("component", "http"),
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
