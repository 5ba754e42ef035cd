package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "doctors_portal", cfg.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, float64(20), cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.EnvFileLoaded)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=6001\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	// Registers restoration of PORT, then clears it so the file value applies.
	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("PORT"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.EnvFileLoaded)
	assert.Equal(t, "6001", cfg.Port)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("STORE", "memory")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestValidate(t *testing.T) {
	base := Config{TokenSecret: "s", Store: StoreMongo, MongoURI: "mongodb://x", TokenTTL: time.Hour}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown store", func(c *Config) { c.Store = "postgres" }},
		{"mongo without uri", func(c *Config) { c.MongoURI = "" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }},
		{"negative burst", func(c *Config) { c.RateLimitBurst = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
