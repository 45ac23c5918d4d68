package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"projectboard/internal/auth"
	"projectboard/internal/config"
	"projectboard/internal/migrate"
	"projectboard/internal/repository"
	"projectboard/internal/seed"
	"projectboard/internal/service"
	serviceAuth "projectboard/internal/service/auth"
)

func main() {
	// Parse command-line flags
	reset := flag.Bool("reset", false, "Roll back all migrations before seeding (drops projects and skills, and deletes the demo owner)")
	schemaOnly := flag.Bool("schema-only", false, "Only apply migrations, don't seed skills or projects")
	ownerID := flag.String("owner", "", "User id owning the sample projects (default: demo user from the seed file, created via the Supabase admin API)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *reset {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--reset) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	data, err := seed.Load()
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	var admin *auth.AdminClient
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		admin = auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	// Schema is managed with goose; it needs a direct database connection
	if cfg.UsePostgres() {
		runner, err := migrate.New(cfg.SupabaseDBURL, cfg.TablePrefix, logger)
		if err != nil {
			log.Fatalf("Failed to configure migrations: %v", err)
		}
		if *reset {
			log.Println("🗑️  Rolling back all migrations...")
			if err := runner.Reset(ctx); err != nil {
				log.Fatalf("Failed to reset schema: %v", err)
			}
			// The demo owner goes with its projects; a caller-supplied owner is left alone
			if admin != nil && *ownerID == "" {
				log.Printf("🗑️  Removing demo owner %s...", data.Owner.Email)
				if err := seed.RemoveOwner(ctx, admin, data.Owner); err != nil {
					log.Fatalf("Failed to remove demo owner: %v", err)
				}
			}
		}
		log.Println("📋 Ensuring database schema is up to date...")
		if err := runner.Up(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("✅ Schema ready")
	} else if *reset || *schemaOnly {
		log.Fatalf("--reset and --schema-only need SUPABASE_DB_URL")
	} else {
		log.Println("ℹ️  No SUPABASE_DB_URL, assuming the PostgREST schema already exists")
	}

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	owner := *ownerID
	if owner == "" {
		if admin == nil {
			log.Fatalf("--owner is required when SUPABASE_URL and SUPABASE_KEY are not set")
		}
		owner, err = seed.EnsureOwner(ctx, admin, data.Owner)
		if err != nil {
			log.Fatalf("Failed to provision demo owner: %v", err)
		}
		log.Printf("👤 Demo owner %s (ID: %s)", data.Owner.Email, owner)
	}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	// Create services
	projectService := service.NewProjectService(store.Projects, serviceAuth.NewOwnerBasedAuthorizer(store.Projects), logger)
	skillService := service.NewSkillService(store.Skills, logger)

	log.Printf("🌱 Seeding %s store (environment: %s, prefix: %s)", store.Kind, cfg.Environment, cfg.TablePrefix)

	result, err := seed.NewSeeder(skillService, projectService, store.Tx, logger).Run(ctx, data, owner)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("🎉 Seeding complete! skills: %d new, %d existing; projects: %d new, %d existing",
		result.SkillsCreated, result.SkillsSkipped, result.ProjectsCreated, result.ProjectsSkipped)
}
