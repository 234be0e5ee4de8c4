package ytdlp

// DefaultQuality is used when the caller omits or misspells the quality.
const DefaultQuality = "best"

// formatSelectors maps the closed quality enumeration onto yt-dlp format
// selection expressions. Each resolution tier prefers an mp4/m4a pair at or
// below the tier ceiling, then any container, then the best single stream.
var formatSelectors = map[string]string{
	"best":  "bestvideo+bestaudio/best",
	"4k":    "bestvideo[height<=2160][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=2160]+bestaudio/best[height<=2160]",
	"1440p": "bestvideo[height<=1440][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=1440]+bestaudio/best[height<=1440]",
	"1080p": "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=1080]+bestaudio/best[height<=1080]",
	"720p":  "bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=720]+bestaudio/best[height<=720]",
	"480p":  "bestvideo[height<=480][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=480]+bestaudio/best[height<=480]",
}

// FormatSelector resolves a quality label to its yt-dlp selector. Unknown
// or empty labels resolve to the "best" selector.
func FormatSelector(quality string) string {
	if selector, ok := formatSelectors[quality]; ok {
		return selector
	}
	return formatSelectors[DefaultQuality]
}

// Qualities lists the accepted quality labels in descending order.
func Qualities() []string {
	return []string{"best", "4k", "1440p", "1080p", "720p", "480p"}
}
