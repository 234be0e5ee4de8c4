package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidfetch/internal/config"
	"vidfetch/internal/fileutil"
	"vidfetch/internal/ytdlp"
)

// Service executes download jobs against a downloads root directory. The
// root is partitioned by random job identifiers, so concurrent jobs never
// share a subtree and no locking is needed.
type Service struct {
	root            string
	downloader      ytdlp.Client
	logger          *slog.Logger
	slots           chan struct{}
	downloadTimeout time.Duration
	metadataTimeout time.Duration
	outputTemplate  string
	maxAge          time.Duration
}

// Result describes a completed download job.
type Result struct {
	ID       string
	FileName string
	FilePath string
	FileSize string
}

// NewService constructs a job service and ensures the downloads root exists.
func NewService(cfg *config.Config, downloader ytdlp.Client, logger *slog.Logger) (*Service, error) {
	if cfg == nil || downloader == nil || logger == nil {
		return nil, fmt.Errorf("job service requires config, downloader, and logger")
	}
	if err := fileutil.EnsureDir(cfg.Paths.DownloadDir); err != nil {
		return nil, err
	}
	return &Service{
		root:            cfg.Paths.DownloadDir,
		downloader:      downloader,
		logger:          logger,
		slots:           make(chan struct{}, cfg.Downloader.MaxConcurrent),
		downloadTimeout: time.Duration(cfg.Downloader.DownloadTimeout) * time.Second,
		metadataTimeout: time.Duration(cfg.Downloader.MetadataTimeout) * time.Second,
		outputTemplate:  cfg.Downloader.OutputTemplate,
		maxAge:          time.Duration(cfg.Cleanup.MaxAgeHours) * time.Hour,
	}, nil
}

// Root returns the downloads root directory.
func (s *Service) Root() string {
	return s.root
}

// Download validates the request, runs yt-dlp into a fresh job directory,
// and reports the produced artifact. On any failure the job directory is
// removed before the error is returned.
func (s *Service) Download(ctx context.Context, url, quality string) (*Result, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	// Bounded worker pool: wait for a slot, giving up when the caller's
	// context ends or after one download timeout. The deadline keeps the
	// wait finite even for detached contexts that never cancel.
	slotCtx, cancel := context.WithTimeout(ctx, s.downloadTimeout)
	defer cancel()
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-slotCtx.Done():
		return nil, &Error{
			Kind:    KindSubprocess,
			Message: ytdlp.MsgGeneric,
			Details: fmt.Sprintf("no download slot available: %v", slotCtx.Err()),
		}
	}

	id := uuid.New().String()
	jobDir := filepath.Join(s.root, id)
	if err := fileutil.EnsureDir(jobDir); err != nil {
		return nil, &Error{Kind: KindSubprocess, Message: ytdlp.MsgGeneric, Details: err.Error()}
	}

	result, err := s.runDownload(ctx, id, jobDir, url, quality)
	if err != nil {
		s.removeJobDir(jobDir)
		return nil, err
	}
	return result, nil
}

func (s *Service) runDownload(ctx context.Context, id, jobDir, url, quality string) (*Result, error) {
	selector := ytdlp.FormatSelector(quality)
	template := filepath.Join(jobDir, s.outputTemplate)

	s.logger.Info("starting download",
		slog.String("job", id),
		slog.String("url", url),
		slog.String("quality", quality))

	runCtx, cancel := context.WithTimeout(ctx, s.downloadTimeout)
	defer cancel()

	if err := s.downloader.Download(runCtx, url, selector, template); err != nil {
		raw := ytdlp.Raw(err)
		s.logger.Error("download failed", slog.String("job", id), slog.String("error", raw))
		return nil, &Error{Kind: KindSubprocess, Message: ytdlp.UserMessage(raw), Details: raw}
	}

	name, size, err := findArtifact(jobDir)
	if err != nil {
		s.logger.Error("no artifact produced", slog.String("job", id))
		return nil, &Error{
			Kind:    KindArtifactMissing,
			Message: ytdlp.MsgGeneric,
			Details: err.Error(),
		}
	}

	result := &Result{
		ID:       id,
		FileName: name,
		FilePath: "/downloads/" + id + "/" + name,
		FileSize: fileutil.FormatSizeMB(size),
	}
	s.logger.Info("download complete",
		slog.String("job", id),
		slog.String("file", name),
		slog.String("size", result.FileSize))
	return result, nil
}

// Metadata probes url without downloading.
func (s *Service) Metadata(ctx context.Context, url string) (*ytdlp.VideoInfo, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.metadataTimeout)
	defer cancel()

	info, err := s.downloader.Probe(runCtx, url)
	if err != nil {
		raw := ytdlp.Raw(err)
		s.logger.Error("metadata probe failed", slog.String("url", url), slog.String("error", raw))
		return nil, &Error{Kind: KindMetadata, Message: "Failed to fetch video info", Details: raw}
	}
	return info, nil
}

// Sweep removes job directories whose modification time is older than the
// configured retention. Individual deletion failures are logged and do not
// stop the rest of the sweep.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("read downloads root: %w", err)
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("stat job directory", slog.String("name", entry.Name()), slog.String("error", err.Error()))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.root, entry.Name())
		if err := fileutil.RemoveTree(path); err != nil {
			s.logger.Warn("sweep removal failed", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		removed++
		s.logger.Info("removed stale job directory", slog.String("name", entry.Name()))
	}
	return removed, nil
}

func (s *Service) removeJobDir(jobDir string) {
	if err := fileutil.RemoveTree(jobDir); err != nil {
		// Best-effort: a failed cleanup must not mask the download error.
		s.logger.Warn("job directory cleanup failed", slog.String("path", jobDir), slog.String("error", err.Error()))
	}
}

// findArtifact picks the download artifact from a job directory: the
// largest non-dotfile entry. yt-dlp normally leaves exactly one file, but
// retried runs can leave partial fragments behind; preferring the largest
// keeps the muxed result.
func findArtifact(jobDir string) (string, int64, error) {
	entries, err := os.ReadDir(jobDir)
	if err != nil {
		return "", 0, fmt.Errorf("read job directory: %w", err)
	}

	var (
		name string
		size int64
	)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if name == "" || info.Size() > size {
			name = entry.Name()
			size = info.Size()
		}
	}
	if name == "" {
		return "", 0, fmt.Errorf("downloader exited successfully but produced no output file")
	}
	return name, size, nil
}
