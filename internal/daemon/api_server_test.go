package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidfetch/internal/api"
	"vidfetch/internal/jobs"
	"vidfetch/internal/testsupport"
	"vidfetch/internal/ytdlp"
)

type stubDownloader struct {
	downloadErr error
	probeInfo   *ytdlp.VideoInfo
	probeErr    error
	write       func(jobDir string)
}

func (s *stubDownloader) Download(_ context.Context, _, _, template string) error {
	if s.write != nil {
		s.write(filepath.Dir(template))
	}
	return s.downloadErr
}

func (s *stubDownloader) Probe(context.Context, string) (*ytdlp.VideoInfo, error) {
	return s.probeInfo, s.probeErr
}

func newTestServer(t *testing.T, dl ytdlp.Client) (*apiServer, *jobs.Service) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := jobs.NewService(cfg, dl, logger)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return newAPIServer(cfg, svc, logger), svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubDownloader{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp api.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}

func TestHandleDownloadSuccess(t *testing.T) {
	stub := &stubDownloader{
		write: func(jobDir string) {
			testsupport.WriteFileSized(t, jobDir, "title.mp4", 1048576)
		},
	}
	srv, _ := newTestServer(t, stub)

	w := postJSON(t, srv.handleDownload, "/api/download",
		api.DownloadRequest{URL: "https://www.youtube.com/watch?v=abc", Quality: "720p"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.DownloadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success true")
	}
	if resp.FileName != "title.mp4" {
		t.Fatalf("unexpected file name %q", resp.FileName)
	}
	if resp.FileSize != "1.00 MB" {
		t.Fatalf("unexpected file size %q", resp.FileSize)
	}
	want := "/downloads/" + resp.DownloadID + "/title.mp4"
	if resp.FilePath != want {
		t.Fatalf("expected path %q, got %q", want, resp.FilePath)
	}
}

func TestHandleDownloadInvalidURL(t *testing.T) {
	srv, svc := newTestServer(t, &stubDownloader{})

	w := postJSON(t, srv.handleDownload, "/api/download", api.DownloadRequest{URL: "not-a-url"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != jobs.MsgInvalidURL {
		t.Fatalf("unexpected error %q", resp.Error)
	}
	entries, err := os.ReadDir(svc.Root())
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatal("expected no job directory for rejected request")
	}
}

func TestHandleDownloadSubprocessFailure(t *testing.T) {
	stub := &stubDownloader{
		downloadErr: &ytdlp.InvokeError{
			Op:     "download",
			Output: "ERROR: HTTP Error 404: Not Found",
			Err:    fmt.Errorf("yt-dlp: exit status 1"),
		},
	}
	srv, _ := newTestServer(t, stub)

	w := postJSON(t, srv.handleDownload, "/api/download",
		api.DownloadRequest{URL: "https://youtu.be/abc"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success == nil || *resp.Success {
		t.Fatal("expected success false in failure body")
	}
	if resp.Error != ytdlp.MsgNotFound {
		t.Fatalf("unexpected error %q", resp.Error)
	}
	if !strings.Contains(resp.Details, "404") {
		t.Fatalf("expected raw details, got %q", resp.Details)
	}
}

func TestHandleDownloadMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, &stubDownloader{})

	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.handleDownload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleDownloadMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &stubDownloader{})

	req := httptest.NewRequest(http.MethodGet, "/api/download", nil)
	w := httptest.NewRecorder()
	srv.handleDownload(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHandleVideoInfoSuccess(t *testing.T) {
	stub := &stubDownloader{
		probeInfo: &ytdlp.VideoInfo{
			Title:    "Test Video",
			Duration: 212,
			Uploader: "Test Channel",
		},
	}
	srv, _ := newTestServer(t, stub)

	w := postJSON(t, srv.handleVideoInfo, "/api/video-info",
		api.VideoInfoRequest{URL: "https://youtu.be/abc"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.VideoInfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "Test Video" || resp.Duration != 212 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !strings.Contains(w.Body.String(), `"formats":[]`) {
		t.Fatalf("expected formats array, got %s", w.Body.String())
	}
}

func TestHandleVideoInfoProbeFailure(t *testing.T) {
	stub := &stubDownloader{
		probeErr: &ytdlp.InvokeError{
			Op:     "probe",
			Output: "{bad",
			Err:    fmt.Errorf("parse metadata: invalid character 'b'"),
		},
	}
	srv, _ := newTestServer(t, stub)

	w := postJSON(t, srv.handleVideoInfo, "/api/video-info",
		api.VideoInfoRequest{URL: "https://youtu.be/abc"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected error message")
	}
	if !strings.Contains(resp.Details, "parse metadata") {
		t.Fatalf("expected parse failure details, got %q", resp.Details)
	}
}

func TestHandleCleanup(t *testing.T) {
	srv, svc := newTestServer(t, &stubDownloader{})
	testsupport.MakeDirAged(t, filepath.Join(svc.Root(), "stale-job"), 25*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/cleanup", nil)
	w := httptest.NewRecorder()
	srv.handleCleanup(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp api.CleanupResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Cleanup completed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if _, err := os.Stat(filepath.Join(svc.Root(), "stale-job")); !os.IsNotExist(err) {
		t.Fatal("expected stale directory to be removed")
	}
}

func TestHandleArtifact(t *testing.T) {
	srv, svc := newTestServer(t, &stubDownloader{})
	jobDir := filepath.Join(svc.Root(), "job-1")
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(jobDir, "title.mp4"), []byte("media-bytes"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/downloads/job-1/title.mp4", nil)
	w := httptest.NewRecorder()
	srv.handleArtifact(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if w.Body.String() != "media-bytes" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestHandleArtifactRejectsTraversalAndListings(t *testing.T) {
	srv, svc := newTestServer(t, &stubDownloader{})
	if err := os.MkdirAll(filepath.Join(svc.Root(), "job-1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for _, path := range []string{
		"/downloads/job-1",
		"/downloads/job-1/",
		"/downloads/..%2F..%2Fetc/passwd",
		"/downloads/job-1/missing.mp4",
		"/downloads/job-1/extra/part.mp4",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.handleArtifact(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("path %q: expected 404, got %d", path, w.Code)
		}
	}
}
