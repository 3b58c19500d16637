package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{
			Name: "create_users_table",
			Up:   createUsersTable,
		},
		{
			Name: "create_resumes_table",
			Up:   createResumesTable,
		},
		{
			Name: "index_resumes_user_updated",
			Up:   indexResumesUserUpdated,
		},
	}

	for _, m := range migrations {
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

func createUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func createResumesTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT 'New Resume',
			content JSONB NOT NULL DEFAULT '{}'::jsonb,
			template_id TEXT NOT NULL DEFAULT 'simple',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func indexResumesUserUpdated(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE INDEX IF NOT EXISTS idx_resumes_user_updated
		ON resumes (user_id, updated_at DESC);
	`
	_, err := pool.Exec(ctx, query)
	return err
}
