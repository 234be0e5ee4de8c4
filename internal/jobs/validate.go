package jobs

import (
	"regexp"
	"strings"
)

// User-facing validation messages.
const (
	MsgURLRequired = "URL is required"
	MsgInvalidURL  = "Invalid YouTube URL"
)

// videoURLPattern is a permissive syntactic pre-filter for YouTube URLs:
// optional scheme, optional www., a known host token, then a path. It does
// not guarantee the URL resolves to real content.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be|m\.youtube\.com|music\.youtube\.com)/.+$`)

// ValidateURL rejects empty or non-YouTube URLs before any subprocess runs.
func ValidateURL(url string) *Error {
	if strings.TrimSpace(url) == "" {
		return invalidRequest(MsgURLRequired)
	}
	if !videoURLPattern.MatchString(url) {
		return invalidRequest(MsgInvalidURL)
	}
	return nil
}
