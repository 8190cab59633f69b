package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "mongodb", cfg.DocDB.Type)
	assert.Equal(t, "interviewly", cfg.DocDB.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Auth.ServiceKey)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("MONGODB_DATABASE", "interviews_test")
	t.Setenv("SERVICE_KEY", "super-secret")
	t.Setenv("LOG_LEVEL", "debug")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "cache.internal", cfg.Cache.Host)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "interviews_test", cfg.DocDB.Database)
	assert.Equal(t, "super-secret", cfg.Auth.ServiceKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_PORT", "not-a-number")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestServerConfig_Address(t *testing.T) {
	// Arrange
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8080}

	// Act & Assert
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
}
