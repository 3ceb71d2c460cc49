package auth

import "time"

const (
	DefaultSignInPath = "/login"
	DefaultSessionTTL = 30 * 24 * time.Hour
	SessionCookie     = "session"
)

// Config describes the two sign-in providers and how sessions are issued.
type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	BackendURL         string
	Secret             string
	SignInPath         string
	SessionTTL         time.Duration
}

func (c Config) withDefaults() Config {
	if c.SignInPath == "" {
		c.SignInPath = DefaultSignInPath
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	return c
}

// Provider is what the sign-in page lists.
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Providers returns the configured providers. Google is listed only when
// both client credentials are set.
func (c Config) Providers() []Provider {
	out := []Provider{{ID: "credentials", Name: "Credentials"}}
	if c.GoogleClientID != "" && c.GoogleClientSecret != "" {
		out = append([]Provider{{ID: "google", Name: "Google"}}, out...)
	}
	return out
}
