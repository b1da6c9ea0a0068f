package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Logger struct {
		Level string
	}
	Storage struct {
		StorageType string
		Database    struct {
			Password string
			Port     int
		}
	}
	Session struct {
		TTL time.Duration
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", `
storage:
  storageType: sql
  database:
    password: $env:PLANIFY_TEST_DB_PASSWORD
    port: 5432
session:
  ttl: 2h
`)
	t.Setenv("PLANIFY_TEST_DB_PASSWORD", "secret")
	DotEnvFile = ""
	defer func() { DotEnvFile = ".env" }()

	var c testConfig
	err := Load(file, map[string]interface{}{"logger.level": "WARN", "storage.storageType": "memory"}, &c)
	require.NoError(t, err)
	require.Equal(t, "WARN", c.Logger.Level)
	require.Equal(t, "sql", c.Storage.StorageType)
	require.Equal(t, "secret", c.Storage.Database.Password)
	require.Equal(t, 5432, c.Storage.Database.Port)
	require.Equal(t, 2*time.Hour, c.Session.TTL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "storage:\n  database:\n    password: $env:PLANIFY_DOTENV_PASSWORD\n")
	DotEnvFile = writeFile(t, dir, ".env", "PLANIFY_DOTENV_PASSWORD=from-dotenv\n")
	defer func() { DotEnvFile = ".env" }()
	defer os.Unsetenv("PLANIFY_DOTENV_PASSWORD")

	var c testConfig
	require.NoError(t, Load(file, nil, &c))
	require.Equal(t, "from-dotenv", c.Storage.Database.Password)
}

func TestLoadMissingFile(t *testing.T) {
	DotEnvFile = ""
	defer func() { DotEnvFile = ".env" }()

	var c testConfig
	require.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), nil, &c))
}
