package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL             string `mapstructure:"api_url"`
	FundingWindowDays  int    `mapstructure:"funding_window_days"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	DebugLogging       bool   `mapstructure:"debug_logging"`
	LogFile            string `mapstructure:"log_file"`
	ExportDir          string `mapstructure:"export_dir"`
}

const (
	DefaultAPIURL = "https://api.hyperliquid.xyz/info"
	// DefaultFundingWindowDays bounds the funding query; the fills endpoint
	// has its own 2000-record cap and takes no lower bound.
	DefaultFundingWindowDays = 180
	// DefaultHTTPTimeoutSeconds of 0 means no timeout: a hanging endpoint
	// blocks the load until the user cancels.
	DefaultHTTPTimeoutSeconds = 0
	DefaultLogFile            = "hyperfolio.log"
	DefaultExportDir          = "exports"
)

// Load reads the config file at path (optional: an empty path yields pure
// defaults) and applies HYPERFOLIO_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"api_url":              DefaultAPIURL,
		"funding_window_days":  DefaultFundingWindowDays,
		"http_timeout_seconds": DefaultHTTPTimeoutSeconds,
		"debug_logging":        false,
		"log_file":             DefaultLogFile,
		"export_dir":           DefaultExportDir,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("HYPERFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return errors.New("missing api_url in configuration")
	}
	parsed, err := url.Parse(cfg.APIURL)
	if err != nil || !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("api_url must be an http(s) URL")
	}
	if cfg.FundingWindowDays <= 0 {
		return errors.New("invalid funding_window_days")
	}
	if cfg.HTTPTimeoutSeconds < 0 {
		return errors.New("invalid http_timeout_seconds")
	}
	if cfg.ExportDir == "" {
		return errors.New("missing export_dir in configuration")
	}
	return nil
}
