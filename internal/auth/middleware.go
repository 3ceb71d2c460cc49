package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "session"

// Middleware attaches the session, when a valid one is presented, to the
// request. It never rejects.
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}
		if raw != "" {
			if sess, err := tokens.Parse(raw); err == nil {
				c.Locals(localsKey, &sess)
			}
		}
		return c.Next()
	}
}

func SessionFrom(c *fiber.Ctx) (*Session, bool) {
	sess, ok := c.Locals(localsKey).(*Session)
	return sess, ok && sess != nil
}

// RequireSession redirects anonymous requests to the sign-in page, carrying
// the original path as callbackUrl.
func RequireSession(signInPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFrom(c); ok {
			return c.Next()
		}
		return c.Redirect(signInPath+"?callbackUrl="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
	}
}

func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
