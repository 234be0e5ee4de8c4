package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vidfetch/internal/api"
	"vidfetch/internal/config"
	"vidfetch/internal/jobs"
)

const maxRequestBody = 1 << 20

type apiServer struct {
	bind    string
	logger  *slog.Logger
	service *jobs.Service

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, service *jobs.Service, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:    strings.TrimSpace(cfg.Paths.Bind),
		logger:  logger,
		service: service,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/api/download", srv.handleDownload)
	mux.HandleFunc("/api/video-info", srv.handleVideoInfo)
	mux.HandleFunc("/api/cleanup", srv.handleCleanup)
	mux.HandleFunc("/downloads/", srv.handleArtifact)

	// Write timeout must outlast the longest possible request: the slot
	// wait and the download itself are each bounded by the download
	// timeout.
	writeTimeout := 2*time.Duration(cfg.Downloader.DownloadTimeout)*time.Second + 30*time.Second

	srv.server = &http.Server{
		Handler:           srv.recoverPanics(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Message: "vidfetch daemon is running",
	})
}

func (s *apiServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req api.DownloadRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Detach from the request context so a dropped client connection does
	// not kill the subprocess mid-download.
	result, err := s.service.Download(context.WithoutCancel(r.Context()), req.URL, req.Quality)
	if err != nil {
		var jobErr *jobs.Error
		if errors.As(err, &jobErr) {
			if jobErr.Kind == jobs.KindInvalidRequest {
				s.writeError(w, http.StatusBadRequest, jobErr.Message)
				return
			}
			failed := false
			s.writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{
				Success: &failed,
				Error:   jobErr.Message,
				Details: jobErr.Details,
			})
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, api.DownloadResponse{
		Success:    true,
		DownloadID: result.ID,
		FileName:   result.FileName,
		FilePath:   result.FilePath,
		FileSize:   result.FileSize,
		Message:    "Video downloaded successfully",
	})
}

func (s *apiServer) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req api.VideoInfoRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.Metadata(context.WithoutCancel(r.Context()), req.URL)
	if err != nil {
		var jobErr *jobs.Error
		if errors.As(err, &jobErr) {
			if jobErr.Kind == jobs.KindInvalidRequest {
				s.writeError(w, http.StatusBadRequest, jobErr.Message)
				return
			}
			s.writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{
				Error:   jobErr.Message,
				Details: jobErr.Details,
			})
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromVideoInfo(info))
}

func (s *apiServer) handleCleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	removed, err := s.service.Sweep(r.Context())
	if err != nil {
		// Sweep failures are logged only; callers always get the ack.
		s.logger.Warn("cleanup sweep failed", slog.String("error", err.Error()))
	} else if removed > 0 {
		s.logger.Info("cleanup sweep finished", slog.Int("removed", removed))
	}
	s.writeJSON(w, http.StatusOK, api.CleanupResponse{Message: "Cleanup completed"})
}

// handleArtifact serves /downloads/{jobId}/{fileName} out of the downloads
// root. Directory listings are never produced and the resolved path must
// stay inside the root.
func (s *apiServer) handleArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/downloads/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}
	jobID, fileName := parts[0], parts[1]
	if !safePathSegment(jobID) || !safePathSegment(fileName) {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}

	root := s.service.Root()
	path := filepath.Join(root, jobID, fileName)
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}
	http.ServeFile(w, r, path)
}

func safePathSegment(segment string) bool {
	if segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`)
}

func decodeRequest(r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	return decoder.Decode(out)
}

func (s *apiServer) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panicked",
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
