package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"API_PORT", "PORT", "ENVIRONMENT", "SUPABASE_URL", "FRONTEND_URL", "REQUIRE_AUTH", "RATE_LIMIT_PER_MINUTE", "SUPABASE_DB_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.SupabaseJWKSURL)
	assert.False(t, cfg.RequireAuth)
	assert.False(t, cfg.UsePostgres())
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "8080")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("FRONTEND_URL", "https://board.example.com, https://preview.example.com")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("SUPABASE_DB_URL", "postgres://localhost/db")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://abc.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
	assert.Equal(t, []string{
		"http://localhost:5173",
		"https://board.example.com",
		"https://preview.example.com",
	}, cfg.CORSOrigins)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.True(t, cfg.UsePostgres())
}

func TestGetTablePrefix(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"test", "test_"},
		{"dev", "dev_"},
		{"prod", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, getTablePrefix(tt.env))
		})
	}

	t.Run("override", func(t *testing.T) {
		t.Setenv("TABLE_PREFIX", "staging_")
		assert.Equal(t, "staging_", getTablePrefix("prod"))
	})

	t.Run("empty override selects bare tables", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "dev")
		t.Setenv("TABLE_PREFIX", "")
		assert.Equal(t, "", getTablePrefix("dev"))
		assert.Equal(t, "", Load().TablePrefix)
	})
}
