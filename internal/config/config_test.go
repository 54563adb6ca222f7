package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/telvik/displayctl/internal/config"
	"codeberg.org/telvik/displayctl/internal/errors"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configContent := []byte(`
width = 2560
height = 1440
refresh_rate = 144
inactivity_timeout = 600
apply_delay = 3
retry_delay = 15
max_retries = 5
background = true
monitor = false
log_level = "debug"
telemetry = true
telemetry_db = "/path/to/telemetry.db"
`)
	configPath := filepath.Join(tempDir, "displayctl.toml")
	err = os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	// Set environment variable to point to the test config file
	t.Setenv("DISPLAYCTL_CONFIG", configPath)

	// Load the config
	cfg, err := config.Load()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2560, cfg.Width, "Expected Width 2560")
	assert.Equal(t, 1440, cfg.Height, "Expected Height 1440")
	assert.Equal(t, 144, cfg.RefreshRate, "Expected RefreshRate 144")
	assert.Equal(t, 600, cfg.InactivityTimeout, "Expected InactivityTimeout 600")
	assert.Equal(t, 3, cfg.ApplyDelay, "Expected ApplyDelay 3")
	assert.Equal(t, 15, cfg.RetryDelay, "Expected RetryDelay 15")
	assert.Equal(t, 5, cfg.MaxRetries, "Expected MaxRetries 5")
	assert.True(t, cfg.Background, "Expected Background true")
	assert.False(t, cfg.Monitor, "Expected Monitor false")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/telemetry.db", cfg.TelemetryDB, "Expected TelemetryDB /path/to/telemetry.db")
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("DISPLAYCTL_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	// Assert default values
	assert.Equal(t, config.DefaultWidth, cfg.Width, "Expected default Width 3840")
	assert.Equal(t, config.DefaultHeight, cfg.Height, "Expected default Height 2160")
	assert.Equal(t, config.DefaultRefreshRate, cfg.RefreshRate, "Expected default RefreshRate 120")
	assert.Equal(t, config.DefaultInactivityTimeout, cfg.InactivityTimeout, "Expected default InactivityTimeout 300")
	assert.Equal(t, config.DefaultApplyDelay, cfg.ApplyDelay, "Expected default ApplyDelay 5")
	assert.Equal(t, config.DefaultRetryDelay, cfg.RetryDelay, "Expected default RetryDelay 10")
	assert.Equal(t, config.DefaultMaxRetries, cfg.MaxRetries, "Expected default MaxRetries 3")
	assert.False(t, cfg.Background, "Expected default Background false")
	assert.False(t, cfg.Monitor, "Expected default Monitor false")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	// Create a temporary directory for the test
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create an invalid test config file
	configContent := []byte(`
This is not a valid TOML file
`)
	configPath := filepath.Join(tempDir, "displayctl.toml")
	err = os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	// Set environment variable to point to the invalid config file
	t.Setenv("DISPLAYCTL_CONFIG", configPath)

	// Try to load the config
	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configContent := []byte(`
log_level = "invalid"
`)
	configPath := filepath.Join(tempDir, "displayctl.toml")
	err = os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("DISPLAYCTL_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_log_level")
}

func TestInvalidMaxRetries(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configContent := []byte(`
max_retries = 0
`)
	configPath := filepath.Join(tempDir, "displayctl.toml")
	err = os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("DISPLAYCTL_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid configuration")
}

func TestLogLevelFlag(t *testing.T) {
	// Save original args and restore after test
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	// Set test args
	os.Args = []string{"cmd", "--log-level", "debug"}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestHelpFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "--help"}

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrHelpRequested), "Expected help_requested, got %v", err)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configContent := []byte(`
width = 1920
height = 1080
`)
	configPath := filepath.Join(tempDir, "displayctl.toml")
	err = os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("DISPLAYCTL_CONFIG", configPath)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "--width", "2560"}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2560, cfg.Width, "Expected flag to override config file")
	assert.Equal(t, 1080, cfg.Height, "Expected config file value to survive for unset flags")
}
