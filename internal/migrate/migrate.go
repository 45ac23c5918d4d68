// Package migrate applies the embedded goose migrations to the record store.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"projectboard/internal/repository/postgres/migrations"
)

// Runner wraps database migration capabilities.
type Runner struct {
	dsn         string
	tablePrefix string
	log         *slog.Logger
}

// New returns a migration runner backed by goose.
func New(dsn, tablePrefix string, log *slog.Logger) (Runner, error) {
	if dsn == "" {
		return Runner{}, errors.New("empty database dsn")
	}
	if log == nil {
		log = slog.Default()
	}
	return Runner{dsn: dsn, tablePrefix: tablePrefix, log: log}, nil
}

// Up applies pending migrations.
func (r Runner) Up(ctx context.Context) error {
	return r.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		r.log.Info("applying migrations", "table_prefix", r.tablePrefix)
		if err := goose.UpContext(runCtx, db, "."); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		r.log.Info("migrations applied")
		return nil
	})
}

// Status reports applied and pending migrations.
func (r Runner) Status(ctx context.Context) error {
	return r.withDB(func(db *sql.DB) error {
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

// Reset rolls back every migration, dropping the projects and skills tables.
func (r Runner) Reset(ctx context.Context) error {
	return r.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		r.log.Warn("rolling back all migrations", "table_prefix", r.tablePrefix)
		if err := goose.ResetContext(runCtx, db, "."); err != nil {
			return fmt.Errorf("reset migrations: %w", err)
		}
		return nil
	})
}

func (r Runner) withDB(fn func(*sql.DB) error) error {
	// The SQL files reference ${TABLE_PREFIX}; goose substitutes it from the environment
	if err := os.Setenv("TABLE_PREFIX", r.tablePrefix); err != nil {
		return fmt.Errorf("export table prefix: %w", err)
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(r.tablePrefix + "goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	db, err := sql.Open("pgx", r.dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sql connection: %w", err)
	}

	return fn(db)
}
