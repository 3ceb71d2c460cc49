package http

import (
	"log/slog"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/site"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with global middleware and every route.
func NewApp(h *Handler, log *slog.Logger) *fiber.App {
	if log == nil {
		log = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "Portfolio Resume",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log.With("component", "http")),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(auth.Middleware(h.auth.Tokens))

	Register(app, h)
	return app
}

func Register(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)

	app.Get("/", h.page(site.PageHome))
	app.Get("/about", h.page(site.PageAbout))
	app.Get("/services", h.page(site.PageServices))
	app.Get("/contact", h.ContactPage)
	app.Post("/contact", h.SubmitContact)
	app.Get("/dashboard", auth.RequireSession(h.auth.Config.SignInPath), h.DashboardPage)

	app.Get("/login", h.LoginPage)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Get("/register", h.RegisterPage)
	app.Post("/register", h.Register)

	api := app.Group("/api")
	api.Get("/templates", h.ListTemplates)
	api.Get("/sections", h.ListSections)
	api.Get("/dashboard", auth.RequireSession(h.auth.Config.SignInPath), h.DashboardJSON)

	drafts := api.Group("/drafts")
	drafts.Post("/", h.CreateDraft)
	drafts.Get("/:id", h.GetDraft)
	drafts.Delete("/:id", h.DeleteDraft)
	drafts.Post("/:id/reset", h.ResetDraft)
	drafts.Put("/:id/template", h.SelectTemplate)
	drafts.Put("/:id/personal", h.UpdatePersonal)
	drafts.Put("/:id/summary", h.UpdateSummary)
	drafts.Post("/:id/navigate", h.Navigate)
	drafts.Get("/:id/preview", h.Preview)
	drafts.Get("/:id/validate", h.Validate)
	drafts.Post("/:id/export", h.Export)
	drafts.Post("/:id/:section", h.AddEntry)
	drafts.Put("/:id/:section/:entryID", h.UpdateEntry)
	drafts.Delete("/:id/:section/:entryID", h.RemoveEntry)
}
