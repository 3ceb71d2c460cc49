package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"portfolio-resume/internal/domain"

	"github.com/google/uuid"
)

type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Validate returns field -> message for every missing or malformed field.
func (r ContactRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch email := strings.TrimSpace(r.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !strings.Contains(email, "@"):
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(r.Subject) == "" {
		errs["subject"] = "Subject is required"
	}
	if strings.TrimSpace(r.Message) == "" {
		errs["message"] = "Message is required"
	}
	return errs
}

type ContactService struct {
	repo ContactRepo
	log  *slog.Logger
}

func NewContactService(repo ContactRepo, log *slog.Logger) *ContactService {
	if log == nil {
		log = slog.Default()
	}
	return &ContactService{repo: repo, log: log.With("component", "contact")}
}

// Submit stores a validated message. With no repository configured the
// message is only logged.
func (s *ContactService) Submit(ctx context.Context, r ContactRequest) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Subject:   strings.TrimSpace(r.Subject),
		Message:   strings.TrimSpace(r.Message),
		CreatedAt: time.Now(),
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, msg); err != nil {
			s.log.Error("failed to save contact message", "error", err)
			return nil, err
		}
	}
	s.log.Info("contact message received", "id", msg.ID, "email", msg.Email, "subject", msg.Subject)
	return msg, nil
}
