package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseKey     string // Service role key, used by the PostgREST store
	SupabaseDBURL   string // Direct Postgres URL; preferred over PostgREST when set
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	FrontendURL     string
	CORSOrigins     []string
	TablePrefix     string
	RequireAuth     bool // Reject mutations without a verified bearer token
	// Rate limiting (mutating routes only)
	RedisURL           string
	RateLimitPerMinute int
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")
	frontendURL := getEnv("FRONTEND_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:               getEnv("API_PORT", getEnv("PORT", "4000")),
		Environment:        env,
		SupabaseURL:        supabaseURL,
		SupabaseKey:        getEnv("SUPABASE_KEY", ""),
		SupabaseDBURL:      getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL:    jwksURL,
		FrontendURL:        frontendURL,
		CORSOrigins:        allowedOrigins(frontendURL),
		TablePrefix:        getTablePrefix(env),
		RequireAuth:        getEnv("REQUIRE_AUTH", "false") == "true",
		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		LogDir:             getEnv("LOG_DIR", ""),
		LogMaxFiles:        getEnvInt("LOG_MAX_FILES", 10),
	}
}

// UsePostgres reports whether the direct Postgres store should be used
// instead of the PostgREST store
func (c *Config) UsePostgres() bool {
	return c.SupabaseDBURL != ""
}

// allowedOrigins returns the local Vite dev server plus the deployed frontend
func allowedOrigins(frontendURL string) []string {
	origins := []string{"http://localhost:5173"}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getTablePrefix returns the table prefix based on environment.
// ENVIRONMENT defaults to dev, which means dev_projects / dev_skills; an
// existing Supabase project with bare tables needs TABLE_PREFIX set to "".
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "test":
		return "test_"
	case "dev":
		return "dev_"
	default:
		// Production uses the bare "projects" / "skills" tables
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
