package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio-resume/internal/domain"
	"portfolio-resume/internal/model"
	"portfolio-resume/internal/wizard"

	"github.com/google/uuid"
)

const renderAttempts = 3

// Exporter turns a draft into a downloadable PDF. Each call regenerates the
// document from the draft as it is now.
type Exporter struct {
	renderer  Renderer
	repo      ExportRepo
	artifacts ArtifactStore
	thumbs    Thumbnailer
	log       *slog.Logger
	backoff   func(attempt int) time.Duration
}

type ExporterOption func(*Exporter)

// WithArtifactStore keeps a copy of every generated PDF.
func WithArtifactStore(s ArtifactStore) ExporterOption {
	return func(e *Exporter) { e.artifacts = s }
}

// WithThumbnailer stores a first-page preview image next to the PDF. It has
// no effect without an artifact store.
func WithThumbnailer(t Thumbnailer) ExporterOption {
	return func(e *Exporter) { e.thumbs = t }
}

func WithLogger(l *slog.Logger) ExporterOption {
	return func(e *Exporter) { e.log = l }
}

func withBackoff(fn func(int) time.Duration) ExporterOption {
	return func(e *Exporter) { e.backoff = fn }
}

func NewExporter(r Renderer, repo ExportRepo, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		renderer: r,
		repo:     repo,
		log:      slog.Default(),
		backoff:  func(i int) time.Duration { return time.Duration(1<<i) * time.Second },
	}
	for _, o := range opts {
		o(e)
	}
	e.log = e.log.With("component", "exporter")
	return e
}

// Export validates the draft and renders it. A failed presence check returns
// *model.ValidationErrors before anything is rendered.
func (e *Exporter) Export(ctx context.Context, d *wizard.Draft) (*ExportResult, error) {
	if err := model.Validate(d.Data); err != nil {
		return nil, err
	}
	tpl, err := model.LookupTemplate(d.Template)
	if err != nil {
		return nil, err
	}

	html, err := RenderDocument(d.Data, tpl)
	if err != nil {
		return nil, err
	}

	pdf, err := e.render(ctx, html)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{
		FileName: model.ExportFileName(d.Data.PersonalInfo.FullName),
		PDF:      pdf,
	}
	rec := e.record(ctx, d, tpl, res)
	res.RecordID = rec.ID.String()
	return res, nil
}

// render produces the PDF with retry and validation of the output signature.
func (e *Exporter) render(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < renderAttempts; i++ {
		pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		e.log.Warn("render attempt failed", "attempt", i+1, "error", err)
		if i < renderAttempts-1 {
			select {
			case <-time.After(e.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", renderAttempts, lastErr)
}

// record stores the artifact, thumbnail and history row. Every step is
// best-effort: the download must not fail because bookkeeping did.
func (e *Exporter) record(ctx context.Context, d *wizard.Draft, tpl model.TemplateConfig, res *ExportResult) *domain.ExportRecord {
	rec := &domain.ExportRecord{
		ID:        uuid.New(),
		OwnerID:   d.OwnerID,
		DraftID:   d.ID,
		Title:     strings.TrimSpace(d.Data.PersonalInfo.FullName),
		Template:  tpl.Name,
		FileName:  res.FileName,
		FileSize:  len(res.PDF),
		Status:    domain.ExportStatusCompleted,
		Metadata:  map[string]interface{}{"completion": d.Completion().Percentage},
		CreatedAt: time.Now(),
	}
	if rec.Title == "" {
		rec.Title = "Resume"
	}

	owner := d.OwnerID
	if owner == "" {
		owner = "anonymous"
	}
	base := fmt.Sprintf("exports/%s/%s", owner, rec.ID)

	if e.artifacts != nil {
		if key, err := e.artifacts.Put(ctx, base+".pdf", "application/pdf", res.PDF); err != nil {
			e.log.Warn("failed to store pdf artifact", "export_id", rec.ID, "error", err)
		} else {
			rec.ArtifactKey = key
		}

		if e.thumbs != nil {
			if jpg, err := e.thumbs.FirstPageJPEG(res.PDF); err != nil {
				e.log.Warn("failed to render thumbnail", "export_id", rec.ID, "error", err)
			} else if key, err := e.artifacts.Put(ctx, base+".jpg", "image/jpeg", jpg); err != nil {
				e.log.Warn("failed to store thumbnail", "export_id", rec.ID, "error", err)
			} else {
				rec.ThumbnailKey = key
			}
		}
	}

	if e.repo != nil {
		if err := e.repo.Save(ctx, rec); err != nil {
			e.log.Warn("failed to save export record", "export_id", rec.ID, "error", err)
		}
	}
	e.log.Info("export completed", "export_id", rec.ID, "template", tpl.ID, "bytes", rec.FileSize)
	return rec
}

// Preview renders the live preview fragment for the draft's template.
func Preview(d *wizard.Draft) (string, error) {
	tpl, err := model.LookupTemplate(d.Template)
	if err != nil {
		return "", err
	}
	return RenderPreview(d.Data, tpl)
}
