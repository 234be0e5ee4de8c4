package api

import "vidfetch/internal/ytdlp"

// DownloadRequest is the body of POST /api/download.
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"`
}

// DownloadResponse is the success body of POST /api/download.
type DownloadResponse struct {
	Success    bool   `json:"success"`
	DownloadID string `json:"downloadId"`
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	FileSize   string `json:"fileSize"`
	Message    string `json:"message"`
}

// VideoInfoRequest is the body of POST /api/video-info.
type VideoInfoRequest struct {
	URL string `json:"url"`
}

// VideoInfoResponse is the success body of POST /api/video-info.
type VideoInfoResponse struct {
	Title       string       `json:"title"`
	Duration    float64      `json:"duration"`
	Thumbnail   string       `json:"thumbnail"`
	Uploader    string       `json:"uploader"`
	UploadDate  string       `json:"uploadDate"`
	Description string       `json:"description"`
	Formats     []FormatInfo `json:"formats"`
}

// FormatInfo describes one stream variant in a VideoInfoResponse.
type FormatInfo struct {
	FormatID   string  `json:"formatId"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	FPS        float64 `json:"fps"`
	VideoCodec string  `json:"vcodec"`
	AudioCodec string  `json:"acodec"`
}

// CleanupResponse is the body of POST /api/cleanup.
type CleanupResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the failure body shared by all endpoints. Success is
// emitted (as false) only for the download endpoint.
type ErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FromVideoInfo converts downloader metadata into the wire representation.
// Formats is always non-nil so the JSON renders as an array.
func FromVideoInfo(info *ytdlp.VideoInfo) VideoInfoResponse {
	resp := VideoInfoResponse{
		Title:       info.Title,
		Duration:    info.Duration,
		Thumbnail:   info.Thumbnail,
		Uploader:    info.Uploader,
		UploadDate:  info.UploadDate,
		Description: info.Description,
		Formats:     make([]FormatInfo, 0, len(info.Formats)),
	}
	for _, f := range info.Formats {
		resp.Formats = append(resp.Formats, FormatInfo{
			FormatID:   f.ID,
			Ext:        f.Ext,
			Resolution: f.Resolution,
			FPS:        f.FPS,
			VideoCodec: f.VideoCodec,
			AudioCodec: f.AudioCodec,
		})
	}
	return resp
}
