package ytdlp

import "fmt"

// VideoInfo is the normalized subset of yt-dlp metadata the service exposes.
type VideoInfo struct {
	Title       string
	Duration    float64
	Thumbnail   string
	Uploader    string
	UploadDate  string
	Description string
	Formats     []Format
}

// Format describes one downloadable stream variant.
type Format struct {
	ID         string
	Ext        string
	Resolution string
	FPS        float64
	VideoCodec string
	AudioCodec string
}

type rawInfo struct {
	Title       string      `json:"title"`
	Duration    float64     `json:"duration"`
	Thumbnail   string      `json:"thumbnail"`
	Uploader    string      `json:"uploader"`
	UploadDate  string      `json:"upload_date"`
	Description string      `json:"description"`
	Formats     []rawFormat `json:"formats"`
}

type rawFormat struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Vcodec     string  `json:"vcodec"`
	Acodec     string  `json:"acodec"`
}

func (r rawInfo) toVideoInfo() *VideoInfo {
	info := &VideoInfo{
		Title:       r.Title,
		Duration:    r.Duration,
		Thumbnail:   r.Thumbnail,
		Uploader:    r.Uploader,
		UploadDate:  r.UploadDate,
		Description: r.Description,
		Formats:     make([]Format, 0, len(r.Formats)),
	}
	for _, f := range r.Formats {
		info.Formats = append(info.Formats, Format{
			ID:         f.FormatID,
			Ext:        f.Ext,
			Resolution: f.resolutionLabel(),
			FPS:        f.FPS,
			VideoCodec: f.Vcodec,
			AudioCodec: f.Acodec,
		})
	}
	return info
}

// resolutionLabel falls back to the reported height when yt-dlp omits the
// resolution string, e.g. "1080p" from height 1080.
func (f rawFormat) resolutionLabel() string {
	if f.Resolution != "" {
		return f.Resolution
	}
	if f.Height > 0 {
		return fmt.Sprintf("%dp", f.Height)
	}
	return ""
}
