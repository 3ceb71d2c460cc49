package auth

import (
	"context"
	"log/slog"
)

// Service ties provider config, the backend and session tokens together.
type Service struct {
	Config  Config
	Tokens  *TokenService
	Backend *BackendClient
}

func NewService(cfg Config, log *slog.Logger) *Service {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	if cfg.Secret == "" {
		log.Warn("AUTH_SECRET is not set, sessions use an insecure development key")
		cfg.Secret = "development-only-session-secret"
	}
	return &Service{
		Config:  cfg,
		Tokens:  NewTokenService(cfg.Secret, cfg.SessionTTL),
		Backend: NewBackendClient(cfg.BackendURL, log),
	}
}

// SignIn authenticates with the credentials provider and returns a signed
// session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, string, error) {
	u, err := s.Backend.Login(ctx, email, password)
	if err != nil {
		return Session{}, "", err
	}
	sess := SessionFromUser(u)
	token, err := s.Tokens.Issue(sess)
	if err != nil {
		return Session{}, "", err
	}
	return sess, token, nil
}
