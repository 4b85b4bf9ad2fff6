package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order on every start; each one must be idempotent.
var Migrations = []Migration{
	{
		Name: "create_drafts",
		SQL: `
			CREATE TABLE IF NOT EXISTS drafts (
				id         UUID PRIMARY KEY,
				template   TEXT NOT NULL DEFAULT 'classic',
				data       JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
	{
		Name: "index_drafts_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS drafts_updated_at_idx ON drafts (updated_at);`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
