package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vidfetch/internal/config"
	"vidfetch/internal/daemon"
	"vidfetch/internal/jobs"
	"vidfetch/internal/logging"
	"vidfetch/internal/preflight"
	"vidfetch/internal/ytdlp"
)

func main() {
	// A local .env may carry PORT and VIDFETCH_CONFIG; missing files are fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	for _, check := range preflight.Run(cfg) {
		if check.Passed {
			logger.Debug("preflight check passed", slog.String("check", check.Name))
			continue
		}
		logger.Warn("preflight check failed",
			slog.String("check", check.Name),
			slog.String("detail", check.Detail))
	}

	downloader := ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.DownloaderBinary()),
		ytdlp.WithCaptureLimit(cfg.Downloader.CaptureLimitBytes),
	)

	service, err := jobs.NewService(cfg, downloader, logger)
	if err != nil {
		logger.Error("create job service", slog.String("error", err.Error()))
		return
	}

	d, err := daemon.New(cfg, service, logger)
	if err != nil {
		logger.Error("create daemon", slog.String("error", err.Error()))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", slog.String("error", err.Error()))
		return
	}

	<-ctx.Done()
	logger.Info("vidfetchd shutting down")
}
