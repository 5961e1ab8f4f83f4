package platform

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", YouTube},
		{"https://youtu.be/dQw4w9WgXcQ", YouTube},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=abc", YouTube},
		{"https://www.instagram.com/p/ABC123/", Instagram},
		{"https://www.facebook.com/watch/?v=123", Facebook},
		{"https://t.me/channel/123", Telegram},
		{"https://telegram.org/some/video", Telegram},
		{"https://example.com/video", Unknown},
		{"", Unknown},
		{"not a url at all", Unknown},
	}
	for _, tc := range cases {
		if got := Detect(tc.url); got != tc.want {
			t.Errorf("Detect(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("https://youtu.be/x") {
		t.Error("expected youtu.be to be supported")
	}
	if Supported("https://example.com") {
		t.Error("expected example.com to be unsupported")
	}
}

func TestTitle(t *testing.T) {
	if got := YouTube.Title(); got != "Youtube" {
		t.Errorf("Title() = %q, want %q", got, "Youtube")
	}
	if got := Unknown.Title(); got != "Unknown" {
		t.Errorf("Title() = %q, want %q", got, "Unknown")
	}
}
