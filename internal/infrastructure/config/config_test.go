package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Auth.AdminKey)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.Postgres.MaxConns)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Ratings.CacheTTL)
	assert.Equal(t, 4, cfg.Ratings.Workers)
	assert.Equal(t, int64(1), cfg.Mongo.Node)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"ENV":                  "production",
		"STORE":                "Mongo",
		"TOKEN_TTL":            "90m",
		"ADMIN_SECRET_KEY":     "admin-key",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"REDIS_ADDR":           "redis:6379",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "admin-key", cfg.Auth.AdminKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadWith_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {},
		"unknown store":  {"JWT_SECRET": "s", "STORE": "sqlite"},
		"zero ttl":       {"JWT_SECRET": "s", "TOKEN_TTL": "0s"},
		"bad duration":   {"JWT_SECRET": "s", "TOKEN_TTL": "soon"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
