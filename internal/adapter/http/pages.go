package http

import (
	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/site"
	"portfolio-resume/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	contactSuccess = "Thank you for your message! I'll get back to you soon."
	contactFailure = "Sorry, there was an error sending your message. Please try again later."
)

func viewerOf(c *fiber.Ctx) *site.Viewer {
	if s, ok := auth.SessionFrom(c); ok {
		return &site.Viewer{Name: s.Name, Email: s.Email}
	}
	return nil
}

func (h *Handler) render(c *fiber.Ctx, status int, name string, p site.Page) error {
	if p.Viewer == nil {
		p.Viewer = viewerOf(c)
	}
	b, err := h.pages.Render(name, p)
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(b)
}

func (h *Handler) page(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.render(c, fiber.StatusOK, name, site.Page{})
	}
}

func (h *Handler) ContactPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, site.PageContact, site.Page{Form: usecase.ContactRequest{}})
}

func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	var req usecase.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return h.render(c, fiber.StatusBadRequest, site.PageContact, site.Page{
			Form: req, Flash: contactFailure, FlashError: true,
		})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return h.render(c, fiber.StatusUnprocessableEntity, site.PageContact, site.Page{Form: req, Errors: errs})
	}
	if _, err := h.contact.Submit(c.UserContext(), req); err != nil {
		h.log.Error("contact submission failed", "error", err)
		return h.render(c, fiber.StatusOK, site.PageContact, site.Page{
			Form: req, Flash: contactFailure, FlashError: true,
		})
	}
	return h.render(c, fiber.StatusOK, site.PageContact, site.Page{
		Form: usecase.ContactRequest{}, Flash: contactSuccess,
	})
}

func (h *Handler) DashboardPage(c *fiber.Ctx) error {
	dash, err := h.dashboard.ForOwner(c.UserContext(), ownerOf(c))
	if err != nil {
		h.log.Warn("dashboard unavailable", "error", err)
		dash = &usecase.Dashboard{Stats: usecase.ExportStats{TemplatesUsed: []string{}}}
	}
	return h.render(c, fiber.StatusOK, site.PageDashboard, site.Page{Dashboard: dash})
}

// DashboardJSON serves the same data as the dashboard page.
func (h *Handler) DashboardJSON(c *fiber.Ctx) error {
	dash, err := h.dashboard.ForOwner(c.UserContext(), ownerOf(c))
	if err != nil {
		return err
	}
	return c.JSON(dash)
}
