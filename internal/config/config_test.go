package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false for missing file")
	}
	if cfg.Downloader.MaxConcurrent != defaultMaxConcurrent {
		t.Fatalf("expected default max_concurrent %d, got %d", defaultMaxConcurrent, cfg.Downloader.MaxConcurrent)
	}
	if cfg.Cleanup.MaxAgeHours != defaultCleanupMaxAgeHours {
		t.Fatalf("expected default max_age_hours %d, got %d", defaultCleanupMaxAgeHours, cfg.Cleanup.MaxAgeHours)
	}
	if !strings.HasSuffix(cfg.Paths.Bind, ":3001") {
		t.Fatalf("expected default bind to use port 3001, got %q", cfg.Paths.Bind)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
download_dir = "` + filepath.Join(dir, "dl") + `"
bind = "127.0.0.1:9000"

[downloader]
max_concurrent = 5

[cleanup]
sweep_interval_minutes = 0
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q with exists=true, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Downloader.MaxConcurrent != 5 {
		t.Fatalf("expected max_concurrent 5, got %d", cfg.Downloader.MaxConcurrent)
	}
	if cfg.Paths.Bind != "127.0.0.1:9000" {
		t.Fatalf("unexpected bind %q", cfg.Paths.Bind)
	}
	if cfg.Cleanup.SweepIntervalMinutes != 0 {
		t.Fatalf("expected sweep disabled, got %d", cfg.Cleanup.SweepIntervalMinutes)
	}
	if !filepath.IsAbs(cfg.Paths.DownloadDir) {
		t.Fatalf("expected absolute download dir, got %q", cfg.Paths.DownloadDir)
	}
}

func TestZeroMaxAgeHoursNormalizesToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[cleanup]
max_age_hours = 0
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Cleanup.MaxAgeHours != defaultCleanupMaxAgeHours {
		t.Fatalf("expected default max_age_hours %d, got %d", defaultCleanupMaxAgeHours, cfg.Cleanup.MaxAgeHours)
	}
}

func TestPortEnvOverridesBindPort(t *testing.T) {
	t.Setenv("PORT", "4444")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasSuffix(cfg.Paths.Bind, ":4444") {
		t.Fatalf("expected PORT override in bind, got %q", cfg.Paths.Bind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max age", func(c *Config) { c.Cleanup.MaxAgeHours = -1 }},
		{"negative sweep", func(c *Config) { c.Cleanup.SweepIntervalMinutes = -5 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"negative capture limit", func(c *Config) { c.Downloader.CaptureLimitBytes = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateRejectsZeroTimeouts(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Downloader.DownloadTimeout = -600
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative download timeout")
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected WriteSample to refuse existing file")
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load of sample config: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Downloader.DownloadTimeout != defaultDownloadTimeout {
		t.Fatalf("sample config should match defaults, got download_timeout %d", cfg.Downloader.DownloadTimeout)
	}
}
