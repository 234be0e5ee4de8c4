package config

const (
	defaultDownloadDir          = "~/.local/share/vidfetch/downloads"
	defaultLogDir               = "~/.local/share/vidfetch/logs"
	defaultBind                 = "0.0.0.0:3001"
	defaultDownloaderBinary     = "yt-dlp"
	defaultDownloadTimeout      = 600
	defaultMetadataTimeout      = 30
	defaultMaxConcurrent        = 3
	defaultOutputTemplate       = "%(title)s.%(ext)s"
	defaultCaptureLimitBytes    = 10 << 20
	defaultMinFreeSpaceGiB      = 1
	defaultCleanupMaxAgeHours   = 24
	defaultSweepIntervalMinutes = 60
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			LogDir:      defaultLogDir,
			Bind:        defaultBind,
		},
		Downloader: Downloader{
			Binary:            defaultDownloaderBinary,
			DownloadTimeout:   defaultDownloadTimeout,
			MetadataTimeout:   defaultMetadataTimeout,
			MaxConcurrent:     defaultMaxConcurrent,
			OutputTemplate:    defaultOutputTemplate,
			CaptureLimitBytes: defaultCaptureLimitBytes,
			MinFreeSpaceGiB:   defaultMinFreeSpaceGiB,
		},
		Cleanup: Cleanup{
			MaxAgeHours:          defaultCleanupMaxAgeHours,
			SweepIntervalMinutes: defaultSweepIntervalMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
