package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "github.com/utafrali/bookborrower/pkg/config"
)

func load(vars map[string]string) (*Config, error) {
	return Load(pkgconfig.WithEnvironment(vars))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "bookborrower", cfg.PostgresDB)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.RedisEnabled)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(map[string]string{
		"HTTP_PORT":     "9090",
		"KAFKA_BROKERS": "k1:9092,k2:9092",
		"CACHE_TTL":     "30s",
		"REDIS_ENABLED": "true",
	})

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.RedisEnabled)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"port zero", map[string]string{"HTTP_PORT": "0"}, "invalid HTTP_PORT"},
		{"port too large", map[string]string{"POSTGRES_PORT": "70000"}, "invalid POSTGRES_PORT"},
		{"sample rate above one", map[string]string{"OTEL_SAMPLE_RATE": "1.5"}, "OTEL_SAMPLE_RATE"},
		{"negative sample rate", map[string]string{"OTEL_SAMPLE_RATE": "-0.1"}, "OTEL_SAMPLE_RATE"},
		{"unparseable ttl", map[string]string{"CACHE_TTL": "soon"}, "load bookborrower config"},
		{"zero ttl", map[string]string{"CACHE_TTL": "0s"}, "CACHE_TTL"},
		{"min above max", map[string]string{"DB_MIN_CONNS": "20", "DB_MAX_CONNS": "5"}, "DB_MIN_CONNS"},
		{"negative rate limit", map[string]string{"RATE_LIMIT_RPS": "-1"}, "RATE_LIMIT_RPS"},
		{"rate limit without burst", map[string]string{"RATE_LIMIT_RPS": "5", "RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
		{"wildcard cors in production", map[string]string{"ENVIRONMENT": "production"}, "CORS_ALLOWED_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(tt.vars)

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ProductionWithExplicitOrigins(t *testing.T) {
	cfg, err := load(map[string]string{
		"ENVIRONMENT":          "production",
		"CORS_ALLOWED_ORIGINS": "https://books.example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://books.example.com"}, cfg.CORSAllowedOrigins)
}

func TestPostgres(t *testing.T) {
	cfg, err := load(map[string]string{"DB_MAX_CONN_LIFETIME_MINS": "5"})
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "localhost", pg.Host)
	assert.Equal(t, 5432, pg.Port)
	assert.Equal(t, 5*time.Minute, pg.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, pg.MaxConnIdleTime)
	assert.Equal(t, "localhost:6379", cfg.Redis().Addr())
}

func TestRateLimit(t *testing.T) {
	cfg, err := load(map[string]string{
		"RATE_LIMIT_RPS":         "2.5",
		"RATE_LIMIT_BURST":       "5",
		"RATE_LIMIT_TRUST_PROXY": "true",
	})
	require.NoError(t, err)

	rl := cfg.RateLimit()
	assert.Equal(t, 2.5, rl.RPS)
	assert.Equal(t, 5, rl.Burst)
	assert.True(t, rl.TrustProxy)
}
