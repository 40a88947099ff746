package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_PATH", "GRPC_ADDRESS", "JWT_SECRET", "TMDB_API_KEY", "LOGIN_RATE_PER_MINUTE", "TMDB_TIMEOUT_SECONDS", "PASSWORD_HASHER"} {
		// Register restore via Setenv, then drop the variable for this test.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.GRPC.Address)
	assert.Equal(t, "users.db", cfg.Database.Path)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "sha256", cfg.Password.Hasher)
	assert.Equal(t, "es-ES", cfg.Catalog.Language)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 10, cfg.GRPC.LoginRatePerMinute)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")

	_, err := Load()
	require.Error(t, err, "expected error when JWT_SECRET is not set")

	t.Setenv("JWT_SECRET", "x")
	_, err = Load()
	require.Error(t, err, "expected error when TMDB_API_KEY is not set")

	t.Setenv("TMDB_API_KEY", "k")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, ":1234", cfg.GRPC.Address)
}

func TestLoad_InvalidInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOGIN_RATE_PER_MINUTE", "many")
	_, err := LoadWithDefaults()
	assert.Error(t, err)

	t.Setenv("LOGIN_RATE_PER_MINUTE", "-1")
	_, err = LoadWithDefaults()
	assert.Error(t, err)
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := LoadWithDefaults()
	require.NoError(t, err)
	assert.False(t, strings.Contains(cfg.String(), "super-secret"))
}
