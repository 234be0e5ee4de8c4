package jobs

import "testing"

func TestValidateURLAccepts(t *testing.T) {
	for _, url := range []string{
		"https://www.youtube.com/watch?v=abc123",
		"http://youtube.com/watch?v=abc123",
		"youtube.com/watch?v=abc123",
		"https://youtu.be/abc123",
		"youtu.be/abc123",
		"https://m.youtube.com/watch?v=abc123",
		"https://music.youtube.com/watch?v=abc123",
	} {
		if err := ValidateURL(url); err != nil {
			t.Fatalf("expected %q to validate, got %v", url, err)
		}
	}
}

func TestValidateURLRejects(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"", MsgURLRequired},
		{"   ", MsgURLRequired},
		{"not-a-url", MsgInvalidURL},
		{"https://vimeo.com/12345", MsgInvalidURL},
		{"https://www.youtube.com", MsgInvalidURL},
		{"ftp://youtube.com/watch?v=abc", MsgInvalidURL},
		{"https://evil.com/youtube.com/watch", MsgInvalidURL},
	}
	for _, tc := range cases {
		err := ValidateURL(tc.url)
		if err == nil {
			t.Fatalf("expected %q to be rejected", tc.url)
		}
		if err.Kind != KindInvalidRequest {
			t.Fatalf("expected invalid request kind for %q, got %q", tc.url, err.Kind)
		}
		if err.Message != tc.want {
			t.Fatalf("url %q: expected message %q, got %q", tc.url, tc.want, err.Message)
		}
	}
}
