package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "gemini-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
database:
  driver: mongo
  mongo:
    uri: mongodb://db:27017
auth:
  jwt_secret: file-secret
  access_token_ttl: 1h
cache:
  enabled: true
  ttl: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.Mongo.URI)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: DriverPostgres},
		Auth:     AuthConfig{JWTSecret: "s", AccessTokenTTL: time.Hour},
	}
	assert.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.Auth.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badDriver := valid
	badDriver.Database.Driver = "mysql"
	assert.Error(t, badDriver.Validate())

	timeouts := valid
	timeouts.Server.MiddlewareTimeout = 75 * time.Second
	timeouts.LLM.Gemini.Timeout = 60 * time.Second
	assert.NoError(t, timeouts.Validate())

	slowGenerator := timeouts
	slowGenerator.LLM.Gemini.Timeout = 75 * time.Second
	assert.ErrorContains(t, slowGenerator.Validate(), "llm.gemini.timeout")

	noMiddlewareTimeout := slowGenerator
	noMiddlewareTimeout.Server.MiddlewareTimeout = 0
	assert.NoError(t, noMiddlewareTimeout.Validate())
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, Database: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", c.DSN())
}
