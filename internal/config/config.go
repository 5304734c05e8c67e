package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/baxromumarov/seo-auditor/internal/httpx"
)

const AppName = "seoaudit"

const (
	DefaultPort                  = "8080"
	DefaultSchemaPath            = "internal/store/schema.sql"
	DefaultAnalysisRatePerMinute = 10
	DefaultExportRatePerMinute   = 5
	DefaultAnalyticsLogPath      = "analytics.jsonl"
	DefaultBatchLimit            = 10
	DefaultRetentionDays         = 30
	DefaultLogLevel              = "info"
)

// Config is the runtime configuration shared by the server and the CLI.
type Config struct {
	Port                  string        `yaml:"port"`
	DatabaseURL           string        `yaml:"databaseURL"`
	SchemaPath            string        `yaml:"schemaPath"`
	AllowedOrigins        []string      `yaml:"allowedOrigins"`
	AnalysisRatePerMinute int           `yaml:"analysisRatePerMinute"`
	ExportRatePerMinute   int           `yaml:"exportRatePerMinute"`
	AnalyticsLogPath      string        `yaml:"analyticsLogPath"`
	UserAgent             string        `yaml:"userAgent"`
	FetchTimeout          time.Duration `yaml:"fetchTimeout"`
	MaxPageBytes          int           `yaml:"maxPageBytes"`
	BatchLimit            int           `yaml:"batchLimit"`
	RetentionDays         int           `yaml:"retentionDays"`
	LogLevel              string        `yaml:"logLevel"`
}

func NewConfig() *Config {
	return &Config{
		Port:                  DefaultPort,
		SchemaPath:            DefaultSchemaPath,
		AllowedOrigins:        []string{"*"},
		AnalysisRatePerMinute: DefaultAnalysisRatePerMinute,
		ExportRatePerMinute:   DefaultExportRatePerMinute,
		AnalyticsLogPath:      DefaultAnalyticsLogPath,
		UserAgent:             httpx.DefaultUserAgent,
		FetchTimeout:          httpx.DefaultTimeout,
		MaxPageBytes:          httpx.DefaultMaxBodySize,
		BatchLimit:            DefaultBatchLimit,
		RetentionDays:         DefaultRetentionDays,
		LogLevel:              DefaultLogLevel,
	}
}

// XDGConfigDir returns the per-user config directory, e.g. ~/.config/seoaudit on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// NewFetcher builds the page fetcher described by c.
func (c *Config) NewFetcher() *httpx.CollyFetcher {
	f := httpx.NewCollyFetcher(c.UserAgent, c.FetchTimeout)
	f.SetMaxBodySize(c.MaxPageBytes)
	return f
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// SlogLevel maps LogLevel to a slog level; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return ErrInvalidPort
	}
	if c.AnalysisRatePerMinute <= 0 || c.ExportRatePerMinute <= 0 {
		return ErrInvalidRate
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxPageBytes <= 0 {
		return ErrInvalidMaxPageBytes
	}
	if c.BatchLimit <= 0 {
		return ErrInvalidBatchLimit
	}
	if c.RetentionDays <= 0 {
		return ErrInvalidRetention
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}
