package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Retention() != 30*24*time.Hour {
		t.Errorf("Retention() = %v", cfg.Retention())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty port", func(c *Config) { c.Port = " " }, ErrInvalidPort},
		{"zero analysis rate", func(c *Config) { c.AnalysisRatePerMinute = 0 }, ErrInvalidRate},
		{"negative export rate", func(c *Config) { c.ExportRatePerMinute = -1 }, ErrInvalidRate},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, ErrInvalidTimeout},
		{"zero page size", func(c *Config) { c.MaxPageBytes = 0 }, ErrInvalidMaxPageBytes},
		{"zero batch", func(c *Config) { c.BatchLimit = 0 }, ErrInvalidBatchLimit},
		{"zero retention", func(c *Config) { c.RetentionDays = 0 }, ErrInvalidRetention},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9090\"\nallowedOrigins:\n  - https://app.example.com\nfetchTimeout: 3s\nbatchLimit: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	if err := LoadConfigFile(path, cfg); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Port != "9090" || cfg.BatchLimit != 25 || cfg.FetchTimeout != 3*time.Second {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.AnalysisRatePerMinute != DefaultAnalysisRatePerMinute {
		t.Errorf("absent key should keep its default, got %d", cfg.AnalysisRatePerMinute)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Parallel()

	err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), NewConfig())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PORT":                     "7000",
		"DATABASE_URL":             "postgres://localhost/seo",
		"ALLOWED_ORIGINS":          " https://a.example , ,https://b.example",
		"ANALYSIS_RATE_PER_MINUTE": "20",
		"FETCH_TIMEOUT":            "15s",
		"LOG_LEVEL":                "debug",
		"MAX_PAGE_BYTES":           "2048",
	}
	cfg := NewConfig()
	if err := applyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Port != "7000" || cfg.DatabaseURL != "postgres://localhost/seo" {
		t.Errorf("string values not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.AnalysisRatePerMinute != 20 || cfg.ExportRatePerMinute != DefaultExportRatePerMinute {
		t.Errorf("rates = %d/%d", cfg.AnalysisRatePerMinute, cfg.ExportRatePerMinute)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.MaxPageBytes != 2048 {
		t.Errorf("MaxPageBytes = %d", cfg.MaxPageBytes)
	}
	if cfg.SlogLevel().String() != "DEBUG" {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	t.Parallel()

	for key, val := range map[string]string{"BATCH_LIMIT": "ten", "FETCH_TIMEOUT": "soon"} {
		env := map[string]string{key: val}
		if err := applyEnv(NewConfig(), func(k string) string { return env[k] }); err == nil {
			t.Errorf("%s=%q should fail", key, val)
		}
	}
}

func TestFindConfigFileExplicit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := os.WriteFile(path, []byte("port: \"1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(path); got != path {
		t.Errorf("FindConfigFile(%q) = %q", path, got)
	}
	if got := FindConfigFile(path + ".missing"); got != "" {
		t.Errorf("missing explicit file should yield \"\", got %q", got)
	}
}
