package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "atelierdesk.db", cfg.Store.Path)
	require.Equal(t, "admin", cfg.Auth.Username)
	require.Equal(t, 19.0, cfg.Billing.TaxPercent)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ATELIER_SERVER_PORT", "9090")
	t.Setenv("ATELIER_TRANSPORT_MODE", "http")
	t.Setenv("ATELIER_STORE_PATH", "/tmp/test.db")
	t.Setenv("ATELIER_TAX_PERCENT", "21")
	t.Setenv("ATELIER_API_TOKEN", "tok123")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "/tmp/test.db", cfg.Store.Path)
	require.Equal(t, 21.0, cfg.Billing.TaxPercent)
	require.Equal(t, "tok123", cfg.Auth.APIToken)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("ATELIER_SERVER_PORT", "not-a-number")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_InvalidTransportMode(t *testing.T) {
	t.Setenv("ATELIER_TRANSPORT_MODE", "carrier-pigeon")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 7070\nbilling:\n  tax_percent: 16\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("ATELIER_CONFIG_PATH", path)
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, 16.0, cfg.Billing.TaxPercent)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644))

	t.Setenv("ATELIER_CONFIG_PATH", path)
	t.Setenv("ATELIER_SERVER_PORT", "9191")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
}
