package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultEnv, cfg.Env)
	assert.Equal(t, defaultRedisURL, cfg.RedisURL)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, defaultDBName)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
env: production
database:
  host: db.internal
  name: blogd
s3:
  bucket: media
  region: me-central-1
  custom_domain: https://cdn.example.com
allowed_origins:
  - example.com
  - "*.example.com"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "db.internal")
	assert.Contains(t, cfg.DSN, "/blogd?")
	assert.Equal(t, "media", cfg.S3.Bucket)
	assert.Equal(t, "https://cdn.example.com", cfg.S3.CustomDomain)
	assert.Equal(t, []string{"example.com", "*.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BLOGD_PORT", "8123")
	t.Setenv("BLOGD_ENV", "production")
	t.Setenv("BLOGD_DSN", "user:pw@tcp(10.0.0.2:3306)/override?parseTime=True")
	t.Setenv("BLOGD_S3_BUCKET", "env-bucket")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "user:pw@tcp(10.0.0.2:3306)/override?parseTime=True", cfg.DSN)
	assert.Equal(t, "env-bucket", cfg.S3.Bucket)
}

func TestDatabaseRuntimeConfig_DSNValue(t *testing.T) {
	d := DatabaseRuntimeConfig{
		Host:     "db.example.com",
		Port:     3307,
		User:     "editor",
		Password: "secret",
		Name:     "content",
	}
	dsn := d.DSNValue()
	assert.Contains(t, dsn, "editor:secret@tcp(db.example.com:3307)/content?")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=True")

	// explicit DSN wins over structured fields
	d.DSN = "raw-dsn"
	assert.Equal(t, "raw-dsn", d.DSNValue())
}
