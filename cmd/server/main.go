package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"projectboard/internal/auth"
	"projectboard/internal/config"
	"projectboard/internal/handler"
	"projectboard/internal/middleware"
	"projectboard/internal/repository"
	"projectboard/internal/service"
	serviceAuth "projectboard/internal/service/auth"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"require_auth", cfg.RequireAuth,
	)
	if cfg.TablePrefix != "" {
		logger.Warn("using prefixed tables; set TABLE_PREFIX= (empty) to use the bare projects and skills tables",
			"projects_table", cfg.TablePrefix+"projects",
			"skills_table", cfg.TablePrefix+"skills",
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store: direct Postgres or PostgREST
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	// Create services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(store.Projects)
	projectService := service.NewProjectService(store.Projects, authorizer, logger)
	skillService := service.NewSkillService(store.Skills, logger)

	// Metrics registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Create handlers and routes
	mux := handler.NewRouter(handler.Handlers{
		Projects: handler.NewProjectHandler(projectService, logger),
		Skills:   handler.NewSkillHandler(skillService, logger),
		Health:   handler.NewHealthHandler(store.Pinger, logger),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// Rate limiter: Redis when configured so limits hold across instances
	var limiter middleware.RateLimiter = middleware.NewMemoryRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	if cfg.RedisURL != "" {
		redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL, cfg.RateLimitPerMinute, time.Minute)
		if err != nil {
			logger.Warn("redis rate limiter unavailable, using in-memory limiter", "error", err)
		} else {
			limiter.Close()
			limiter = redisLimiter
		}
	}
	defer limiter.Close()

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Metrics → Recovery → Auth → RateLimit → Routes
	// Metrics sits outside Recovery so recovered panics are counted as 500s
	h = middleware.RateLimit(limiter, metrics, logger)(h)

	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		h = middleware.Auth(jwtVerifier, middleware.AuthOptions{RequireAuth: cfg.RequireAuth}, logger)(h)
	} else if cfg.RequireAuth {
		log.Fatalf("REQUIRE_AUTH=true needs SUPABASE_URL to verify tokens")
	} else {
		logger.Warn("SUPABASE_URL not set, bearer tokens will not be verified")
	}

	h = middleware.Recovery(logger)(h)
	h = metrics.Instrument(handler.RoutePattern(mux))(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "store", store.Kind, "origins", cfg.CORSOrigins)
		errorCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
		logger.Info("server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}
}
