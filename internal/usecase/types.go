package usecase

import (
	"context"
	"time"

	"portfolio-resume/internal/domain"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ExportRepo persists export history for the dashboard.
type ExportRepo interface {
	Save(ctx context.Context, r *domain.ExportRecord) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.ExportRecord, error)
	StatsForOwner(ctx context.Context, ownerID string) (ExportStats, error)
}

// ArtifactStore keeps generated files. Put returns the key the file can be
// fetched back with.
type ArtifactStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// Thumbnailer renders the first page of a PDF as a JPEG.
type Thumbnailer interface {
	FirstPageJPEG(pdf []byte) ([]byte, error)
}

type ContactRepo interface {
	Save(ctx context.Context, m *domain.ContactMessage) error
}

// ExportStats is the aggregate the dashboard shows.
type ExportStats struct {
	ResumesCreated int        `json:"resumes_created"`
	Downloads      int        `json:"downloads"`
	TemplatesUsed  []string   `json:"templates_used"`
	LastExportAt   *time.Time `json:"last_export_at,omitempty"`
}

// ExportResult is what the caller streams back to the user.
type ExportResult struct {
	FileName string
	PDF      []byte
	RecordID string
}
