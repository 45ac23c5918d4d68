// Package repository selects and opens the record store backing the API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"projectboard/internal/config"
	"projectboard/internal/domain/repositories"
	"projectboard/internal/repository/postgres"
	"projectboard/internal/repository/supabase"
)

// Store bundles the repositories of one record store backend
type Store struct {
	Projects repositories.ProjectRepository
	Skills   repositories.SkillRepository
	Pinger   repositories.Pinger
	// Tx is nil for the PostgREST backend, which has no multi-statement transactions
	Tx repositories.TransactionManager
	// Kind is "postgres" or "postgrest"
	Kind  string
	close func()
}

// Close releases the store's connections
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to Postgres directly when SUPABASE_DB_URL is set and falls
// back to the PostgREST API (SUPABASE_URL + SUPABASE_KEY) otherwise.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.UsePostgres() {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		logger.Info("record store connected", "kind", "postgres", "table_prefix", cfg.TablePrefix)
		return &Store{
			Projects: postgres.NewProjectRepository(repoConfig),
			Skills:   postgres.NewSkillRepository(repoConfig),
			Pinger:   postgres.NewPinger(pool),
			Tx:       postgres.NewTransactionManager(pool, logger),
			Kind:     "postgres",
			close:    pool.Close,
		}, nil
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, errors.New("no record store configured: set SUPABASE_DB_URL or SUPABASE_URL and SUPABASE_KEY")
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, tables, logger)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	logger.Info("record store configured", "kind", "postgrest", "table_prefix", cfg.TablePrefix)
	return &Store{
		Projects: supabase.NewProjectRepository(client),
		Skills:   supabase.NewSkillRepository(client),
		Pinger:   client,
		Kind:     "postgrest",
	}, nil
}
