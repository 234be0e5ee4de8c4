package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownloader()
	c.normalizeCleanup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Paths.Bind = strings.TrimSpace(c.Paths.Bind)
	if c.Paths.Bind == "" {
		c.Paths.Bind = defaultBind
	}
	// The PORT env var overrides the configured port but not the host.
	if port, ok := os.LookupEnv("PORT"); ok {
		port = strings.TrimSpace(port)
		if port != "" {
			host, _, err := net.SplitHostPort(c.Paths.Bind)
			if err != nil {
				host = c.Paths.Bind
			}
			c.Paths.Bind = net.JoinHostPort(host, port)
		}
	}
	return nil
}

func (c *Config) normalizeDownloader() {
	c.Downloader.Binary = strings.TrimSpace(c.Downloader.Binary)
	if c.Downloader.Binary == "" {
		c.Downloader.Binary = defaultDownloaderBinary
	}
	if c.Downloader.DownloadTimeout == 0 {
		c.Downloader.DownloadTimeout = defaultDownloadTimeout
	}
	if c.Downloader.MetadataTimeout == 0 {
		c.Downloader.MetadataTimeout = defaultMetadataTimeout
	}
	if c.Downloader.MaxConcurrent == 0 {
		c.Downloader.MaxConcurrent = defaultMaxConcurrent
	}
	if strings.TrimSpace(c.Downloader.OutputTemplate) == "" {
		c.Downloader.OutputTemplate = defaultOutputTemplate
	}
	if c.Downloader.CaptureLimitBytes == 0 {
		c.Downloader.CaptureLimitBytes = defaultCaptureLimitBytes
	}
}

func (c *Config) normalizeCleanup() {
	if c.Cleanup.MaxAgeHours == 0 {
		c.Cleanup.MaxAgeHours = defaultCleanupMaxAgeHours
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
