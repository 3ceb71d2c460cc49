package http

import (
	"errors"
	"net/url"
	"strings"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/site"

	"github.com/gofiber/fiber/v2"
)

const (
	signInFailed      = "Invalid email or password"
	registerSucceeded = "Account created. You can sign in now."
)

// safeCallback accepts only local paths so sign-in cannot redirect off-site.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/dashboard"
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" {
		return "/dashboard"
	}
	return raw
}

func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, site.PageLogin, site.Page{
		Title:       "Sign in",
		Providers:   h.auth.Config.Providers(),
		CallbackURL: safeCallback(c.Query("callbackUrl")),
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email" form:"email"`
		Password    string `json:"password" form:"password"`
		CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	callback := safeCallback(req.CallbackURL)

	sess, token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrMissingCredentials) && !errors.Is(err, auth.ErrSignInFailed) {
			h.log.Error("sign in failed", "error", err)
		}
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": signInFailed})
		}
		return h.render(c, fiber.StatusUnauthorized, site.PageLogin, site.Page{
			Title:       "Sign in",
			Providers:   h.auth.Config.Providers(),
			CallbackURL: callback,
			Flash:       signInFailed,
			FlashError:  true,
		})
	}

	auth.SetSessionCookie(c, token, h.auth.Tokens.TTL())
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"user": sess, "token": token})
	}
	return c.Redirect(callback, fiber.StatusSeeOther)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	if wantsJSON(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handler) RegisterPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, site.PageRegister, site.Page{Title: "Register", Form: auth.RegisterRequest{}})
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	form := req
	form.Password, form.ConfirmPassword = "", ""

	if errs := req.Validate(); len(errs) > 0 {
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation failed", "fields": errs})
		}
		return h.render(c, fiber.StatusUnprocessableEntity, site.PageRegister, site.Page{Title: "Register", Form: form, Errors: errs})
	}

	out, err := h.auth.Backend.Register(c.UserContext(), req)
	if err != nil {
		status := fiber.StatusBadGateway
		var regErr *auth.RegistrationError
		if errors.As(err, &regErr) {
			status = regErr.Status
		}
		if wantsJSON(c) {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return h.render(c, status, site.PageRegister, site.Page{
			Title: "Register", Form: form, Flash: err.Error(), FlashError: true,
		})
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return h.render(c, fiber.StatusCreated, site.PageRegister, site.Page{
		Title: "Register", Form: auth.RegisterRequest{}, Flash: registerSucceeded,
	})
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) ||
		c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
