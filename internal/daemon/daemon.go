package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"vidfetch/internal/config"
	"vidfetch/internal/jobs"
)

// Daemon owns the HTTP API server, the periodic sweep, and the
// single-instance lock.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *jobs.Service
	logPath string

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	sweepDone chan struct{}
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	Bind          string
	DownloadsRoot string
	LockFilePath  string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, service *jobs.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || service == nil || logger == nil {
		return nil, errors.New("daemon requires config, job service, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "vidfetchd.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		service:  service,
		logPath:  filepath.Join(cfg.Paths.LogDir, "vidfetch.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, service, logger)
	return d, nil
}

// Start acquires the daemon lock, binds the API listener, and launches the
// sweep ticker when one is configured.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another vidfetch daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	if interval := d.sweepInterval(); interval > 0 {
		d.sweepDone = make(chan struct{})
		go d.runSweepLoop(d.ctx, interval)
	}

	d.running.Store(true)
	d.logger.Info("vidfetch daemon started",
		slog.String("address", d.api.addr()),
		slog.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server, halts the sweep, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if d.sweepDone != nil {
		<-d.sweepDone
		d.sweepDone = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", slog.String("error", err.Error()))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("vidfetch daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// APIAddr returns the bound listener address, or the configured bind when
// the daemon is not running.
func (d *Daemon) APIAddr() string {
	if addr := d.api.addr(); addr != "" {
		return addr
	}
	return d.cfg.Paths.Bind
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:       d.running.Load(),
		Bind:          d.APIAddr(),
		DownloadsRoot: d.service.Root(),
		LockFilePath:  d.lockPath,
	}
}

func (d *Daemon) sweepInterval() time.Duration {
	return time.Duration(d.cfg.Cleanup.SweepIntervalMinutes) * time.Minute
}

func (d *Daemon) runSweepLoop(ctx context.Context, interval time.Duration) {
	defer close(d.sweepDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := d.service.Sweep(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				d.logger.Warn("scheduled sweep failed", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				d.logger.Info("scheduled sweep finished", slog.Int("removed", removed))
			}
		}
	}
}
