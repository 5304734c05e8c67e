package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "seoaudit.yaml"

// Load builds the configuration from defaults, then the YAML file, then the
// environment. An explicit configPath that does not exist is an error; a
// missing default file is not.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		if err := LoadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // config path is user supplied on purpose
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrConfigNotFound
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// FindConfigFile searches for the configuration file in this order:
//  1. configPath, when given
//  2. seoaudit.yaml in the current directory
//  3. config.yaml in the XDG config directory
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("PORT", &cfg.Port)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("SCHEMA_PATH", &cfg.SchemaPath)
	setString("ANALYTICS_LOG_PATH", &cfg.AnalyticsLogPath)
	setString("USER_AGENT", &cfg.UserAgent)
	setString("LOG_LEVEL", &cfg.LogLevel)

	if v := strings.TrimSpace(getenv("ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(getenv("FETCH_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}

	for key, dst := range map[string]*int{
		"ANALYSIS_RATE_PER_MINUTE": &cfg.AnalysisRatePerMinute,
		"EXPORT_RATE_PER_MINUTE":   &cfg.ExportRatePerMinute,
		"BATCH_LIMIT":              &cfg.BatchLimit,
		"MAX_PAGE_BYTES":           &cfg.MaxPageBytes,
		"RETENTION_DAYS":           &cfg.RetentionDays,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
