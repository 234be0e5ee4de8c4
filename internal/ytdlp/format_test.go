package ytdlp

import (
	"strings"
	"testing"
)

func TestFormatSelectorKnownQualities(t *testing.T) {
	for _, quality := range Qualities() {
		selector := FormatSelector(quality)
		if selector == "" {
			t.Fatalf("quality %q produced empty selector", quality)
		}
		if quality == "best" {
			continue
		}
		if !strings.Contains(selector, "height<=") {
			t.Fatalf("quality %q selector missing height ceiling: %q", quality, selector)
		}
		if !strings.Contains(selector, "ext=mp4") {
			t.Fatalf("quality %q selector missing container preference: %q", quality, selector)
		}
	}
}

func TestFormatSelectorDeterministic(t *testing.T) {
	if FormatSelector("720p") != FormatSelector("720p") {
		t.Fatal("selector lookup must be deterministic")
	}
	if FormatSelector("4k") != formatSelectors["4k"] {
		t.Fatal("selector must come from the fixed table")
	}
}

func TestFormatSelectorUnknownFallsBackToBest(t *testing.T) {
	best := FormatSelector("best")
	for _, quality := range []string{"", "8k", "240p", "BEST", "720"} {
		if got := FormatSelector(quality); got != best {
			t.Fatalf("quality %q: expected best selector %q, got %q", quality, best, got)
		}
	}
}
