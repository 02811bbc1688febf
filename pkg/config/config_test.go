package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int      `env:"TEST_CFG_PORT" envDefault:"8000"`
	Host    string   `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Brokers []string `env:"TEST_CFG_BROKERS" envDefault:"a:1" envSeparator:","`
	Debug   bool     `env:"TEST_CFG_DEBUG" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, []string{"a:1"}, cfg.Brokers)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_HOST", "0.0.0.0")
	t.Setenv("TEST_CFG_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TEST_CFG_DEBUG", "true")

	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.True(t, cfg.Debug)
}

func TestLoad_WithEnvironment_IgnoresProcessEnv(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")

	var cfg testConfig
	err := Load(&cfg, WithEnvironment(map[string]string{"TEST_CFG_HOST": "db"}))

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "db", cfg.Host)
}

func TestLoad_WithPrefix(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg,
		WithPrefix("APP_"),
		WithEnvironment(map[string]string{"APP_TEST_CFG_PORT": "7000", "TEST_CFG_HOST": "ignored"}),
	)

	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
}

type requiredConfig struct {
	APIKey string `env:"TEST_CFG_API_KEY,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg, WithEnvironment(map[string]string{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg, WithEnvironment(map[string]string{"TEST_CFG_PORT": "not-a-number"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
