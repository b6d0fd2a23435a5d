package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConfigJSON = `{
    "api_url": "https://api.hyperliquid.xyz/info",
    "funding_window_days": 90,
    "http_timeout_seconds": 30,
    "debug_logging": true,
    "log_file": "tracker.log",
    "export_dir": "out"
}`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "valid config",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.hyperliquid.xyz/info", cfg.APIURL)
				assert.Equal(t, 90, cfg.FundingWindowDays)
				assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)
				assert.True(t, cfg.DebugLogging)
				assert.Equal(t, "out", cfg.ExportDir)
			},
		},
		{
			name:    "invalid api_url scheme",
			content: `{"api_url": "ftp://example.com"}`,
			wantErr: true,
		},
		{
			name:    "negative funding window",
			content: `{"funding_window_days": -1}`,
			wantErr: true,
		},
		{
			name:    "negative timeout",
			content: `{"http_timeout_seconds": -5}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeTestConfig(t, tt.content))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultFundingWindowDays, cfg.FundingWindowDays)
	assert.Equal(t, DefaultHTTPTimeoutSeconds, cfg.HTTPTimeoutSeconds)
	assert.False(t, cfg.DebugLogging)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HYPERFOLIO_FUNDING_WINDOW_DAYS", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FundingWindowDays)
}
