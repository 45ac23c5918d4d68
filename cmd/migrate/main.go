package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"projectboard/internal/config"
	"projectboard/internal/migrate"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, status or reset")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger, closer, err := config.NewLogger(cfg)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if cfg.SupabaseDBURL == "" {
		logger.Error("SUPABASE_DB_URL is required for migrations")
		os.Exit(1)
	}

	runner, err := migrate.New(cfg.SupabaseDBURL, cfg.TablePrefix, logger)
	if err != nil {
		logger.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	switch *command {
	case "up":
		err = runner.Up(ctx)
	case "status":
		err = runner.Status(ctx)
	case "reset":
		if cfg.Environment == "prod" {
			logger.Error("refusing to reset migrations in production")
			os.Exit(1)
		}
		err = runner.Reset(ctx)
	default:
		logger.Error("unknown command", "command", *command)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration command failed", "command", *command, "error", err)
		os.Exit(1)
	}
}
