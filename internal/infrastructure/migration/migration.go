package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists every migration in the order it must run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_export_records", Up: execAll(createExportRecords)},
		{Name: "index_export_records_owner", Up: execAll(indexExportRecordsOwner)},
		{Name: "create_contact_messages", Up: execAll(createContactMessages)},
	}
}

const createExportRecords = `
	CREATE TABLE IF NOT EXISTS export_records (
		id            UUID PRIMARY KEY,
		owner_id      TEXT NOT NULL DEFAULT '',
		draft_id      UUID NOT NULL,
		title         TEXT NOT NULL,
		template      TEXT NOT NULL,
		file_name     TEXT NOT NULL,
		file_size     INTEGER NOT NULL DEFAULT 0,
		artifact_key  TEXT NOT NULL DEFAULT '',
		thumbnail_key TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		metadata      JSONB DEFAULT '{}'::jsonb,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const indexExportRecordsOwner = `
	CREATE INDEX IF NOT EXISTS export_records_owner_created_idx
	ON export_records (owner_id, created_at DESC);
`

const createContactMessages = `
	CREATE TABLE IF NOT EXISTS contact_messages (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func execAll(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}
