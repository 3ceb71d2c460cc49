package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-resume/internal/domain"
	"portfolio-resume/internal/usecase"

	"github.com/jackc/pgx/v4/pgxpool"
)

type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Save(ctx context.Context, rec *domain.ExportRecord) error {
	if r.pool == nil {
		return nil
	}

	metaB, _ := json.Marshal(rec.Metadata)

	_, err := r.pool.Exec(ctx, `INSERT INTO export_records (id, owner_id, draft_id, title, template, file_name, file_size, artifact_key, thumbnail_key, status, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, template = EXCLUDED.template, file_name = EXCLUDED.file_name, file_size = EXCLUDED.file_size, artifact_key = EXCLUDED.artifact_key, thumbnail_key = EXCLUDED.thumbnail_key, status = EXCLUDED.status, metadata = EXCLUDED.metadata`,
		rec.ID, rec.OwnerID, rec.DraftID, rec.Title, rec.Template, rec.FileName, rec.FileSize, rec.ArtifactKey, rec.ThumbnailKey, rec.Status, metaB, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert export record: %w", err)
	}
	return nil
}

// ListByOwner returns the newest records first.
func (r *ExportsRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.ExportRecord, error) {
	if r.pool == nil {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, owner_id, draft_id, title, template, file_name, file_size, artifact_key, thumbnail_key, status, metadata, created_at
		FROM export_records WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query export records: %w", err)
	}
	defer rows.Close()

	var out []domain.ExportRecord
	for rows.Next() {
		var rec domain.ExportRecord
		var metaB []byte
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.DraftID, &rec.Title, &rec.Template, &rec.FileName, &rec.FileSize,
			&rec.ArtifactKey, &rec.ThumbnailKey, &rec.Status, &metaB, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export record: %w", err)
		}
		if len(metaB) > 0 {
			_ = json.Unmarshal(metaB, &rec.Metadata)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const statsSQL = `SELECT json_build_object(
		'resumes_created', count(DISTINCT draft_id),
		'downloads', count(*),
		'templates_used', coalesce(json_agg(DISTINCT template) FILTER (WHERE template <> ''), '[]'),
		'last_export_at', max(created_at)
	) FROM export_records WHERE owner_id = $1 AND status = 'completed'`

func (r *ExportsRepo) StatsForOwner(ctx context.Context, ownerID string) (usecase.ExportStats, error) {
	stats := usecase.ExportStats{TemplatesUsed: []string{}}
	if r.pool == nil {
		return stats, nil
	}
	if err := queryJSON(ctx, r.pool, &stats, statsSQL, ownerID); err != nil {
		return stats, fmt.Errorf("export stats: %w", err)
	}
	return stats, nil
}
