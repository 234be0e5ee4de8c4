package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

var commandContext = exec.CommandContext

const defaultCaptureLimit = 10 << 20

// Client defines the downloader behaviour the job service depends on.
type Client interface {
	// Download fetches url into the location described by outputTemplate
	// using the given yt-dlp format selector.
	Download(ctx context.Context, url, formatSelector, outputTemplate string) error
	// Probe fetches metadata for url without downloading.
	Probe(ctx context.Context, url string) (*VideoInfo, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithCaptureLimit caps the combined stdout/stderr bytes retained per
// invocation. Exceeding the cap aborts the call.
func WithCaptureLimit(limit int64) Option {
	return func(c *CLI) {
		if limit > 0 {
			c.captureLimit = limit
		}
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary       string
	captureLimit int64
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "yt-dlp", captureLimit: defaultCaptureLimit}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Download runs yt-dlp with the computed format selector. The URL is always
// passed as a discrete argv element, never interpolated into a shell string.
func (c *CLI) Download(ctx context.Context, url, formatSelector, outputTemplate string) error {
	if url == "" {
		return errors.New("url required")
	}
	if formatSelector == "" {
		return errors.New("format selector required")
	}
	if outputTemplate == "" {
		return errors.New("output template required")
	}

	args := []string{"-f", formatSelector, "-o", outputTemplate, url}
	output, err := c.run(ctx, args)
	if err != nil {
		return &InvokeError{Op: "download", Output: output, Err: err}
	}
	return nil
}

// Probe runs yt-dlp in metadata-only mode and parses its single-line JSON
// output.
func (c *CLI) Probe(ctx context.Context, url string) (*VideoInfo, error) {
	if url == "" {
		return nil, errors.New("url required")
	}

	args := []string{"-j", url}
	output, err := c.run(ctx, args)
	if err != nil {
		return nil, &InvokeError{Op: "probe", Output: output, Err: err}
	}

	line := firstJSONLine(output)
	var raw rawInfo
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, &InvokeError{Op: "probe", Output: output, Err: fmt.Errorf("parse metadata: %w", err)}
	}
	return raw.toVideoInfo(), nil
}

// run executes the binary and returns the combined captured output. The
// capture buffer is capped; the first breach kills the process outright so
// a child that overflows and then goes quiet cannot run out the deadline.
func (c *CLI) run(ctx context.Context, args []string) (string, error) {
	capture := &cappedBuffer{limit: c.captureLimit}

	cmd := commandContext(ctx, c.binary, args...)
	cmd.Stdout = capture
	cmd.Stderr = capture
	capture.kill = func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}

	err := cmd.Run()
	output := capture.String()
	if err != nil {
		if ctx.Err() != nil {
			return output, fmt.Errorf("%s timed out: %w", c.binary, ctx.Err())
		}
		if capture.overflowed() {
			return output, fmt.Errorf("%s produced more than %d bytes of output", c.binary, c.captureLimit)
		}
		return output, fmt.Errorf("%s: %w", c.binary, err)
	}
	return output, nil
}

// InvokeError carries the raw subprocess output alongside the failure cause.
type InvokeError struct {
	Op     string
	Output string
	Err    error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("yt-dlp %s: %v", e.Op, e.Err)
}

func (e *InvokeError) Unwrap() error { return e.Err }

// Raw returns the diagnostic text for an error: the captured subprocess
// output when present, the error string otherwise.
func Raw(err error) string {
	var invokeErr *InvokeError
	if errors.As(err, &invokeErr) {
		if out := strings.TrimSpace(invokeErr.Output); out != "" {
			return out + "\n" + invokeErr.Err.Error()
		}
		return invokeErr.Err.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// cappedBuffer grows until limit, then rejects writes. The first rejected
// write fires kill, and the error also propagates through os/exec.
type cappedBuffer struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	limit    int64
	overflow bool
	kill     func()
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	if int64(b.buf.Len())+int64(len(p)) > b.limit {
		first := !b.overflow
		b.overflow = true
		kill := b.kill
		b.mu.Unlock()
		if first && kill != nil {
			kill()
		}
		return 0, fmt.Errorf("output capture limit of %d bytes exceeded", b.limit)
	}
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *cappedBuffer) overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflow
}

func firstJSONLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			return trimmed
		}
	}
	return strings.TrimSpace(output)
}

var _ Client = (*CLI)(nil)
