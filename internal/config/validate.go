package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownloader(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DownloadDir == "" {
		return errors.New("paths.download_dir must be set")
	}
	if c.Paths.Bind == "" {
		return errors.New("paths.bind must be set")
	}
	return nil
}

func (c *Config) validateDownloader() error {
	if err := ensurePositiveMap(map[string]int{
		"downloader.download_timeout": c.Downloader.DownloadTimeout,
		"downloader.metadata_timeout": c.Downloader.MetadataTimeout,
		"downloader.max_concurrent":   c.Downloader.MaxConcurrent,
	}); err != nil {
		return err
	}
	if c.Downloader.CaptureLimitBytes < 0 {
		return errors.New("downloader.capture_limit_bytes must not be negative")
	}
	if c.Downloader.MinFreeSpaceGiB < 0 {
		return errors.New("downloader.min_free_space_gib must not be negative")
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if c.Cleanup.MaxAgeHours <= 0 {
		return errors.New("cleanup.max_age_hours must be positive")
	}
	// Zero disables the background sweep; the endpoint remains available.
	if c.Cleanup.SweepIntervalMinutes < 0 {
		return errors.New("cleanup.sweep_interval_minutes must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
