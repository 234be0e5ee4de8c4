package ytdlp

import "strings"

// User-facing failure messages derived from yt-dlp error output.
const (
	MsgNotFound    = "Video not found"
	MsgRateLimited = "YouTube is rate limiting requests. Please try again later."
	MsgUnavailable = "Video is unavailable, private, or deleted"
	MsgGeneric     = "Failed to download video"
)

// UserMessage sniffs raw yt-dlp error text for well-known failure markers
// and returns a message suitable for display. The mapping is pure: the same
// input always yields the same message.
func UserMessage(raw string) string {
	switch {
	case strings.Contains(raw, "404"):
		return MsgNotFound
	case strings.Contains(raw, "429"):
		return MsgRateLimited
	case strings.Contains(raw, "unavailable"):
		return MsgUnavailable
	default:
		return MsgGeneric
	}
}
