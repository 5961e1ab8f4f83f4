package platform

import "strings"

// Platform identifies the video hosting service a URL belongs to.
type Platform string

const (
	YouTube   Platform = "youtube"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	Telegram  Platform = "telegram"
	Unknown   Platform = "unknown"
)

func (p Platform) String() string {
	return string(p)
}

// Title returns the capitalized platform name for user-facing output.
func (p Platform) Title() string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Detect derives the platform from URL substring content alone. It never
// touches the network, so it also works for URLs the extraction engine
// later rejects.
func Detect(rawURL string) Platform {
	url := strings.ToLower(rawURL)
	switch {
	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		return YouTube
	case strings.Contains(url, "instagram.com"):
		return Instagram
	case strings.Contains(url, "facebook.com"):
		return Facebook
	case strings.Contains(url, "t.me") || strings.Contains(url, "telegram.org"):
		return Telegram
	default:
		return Unknown
	}
}

// Supported reports whether downloads from the URL's platform are handled.
func Supported(rawURL string) bool {
	return Detect(rawURL) != Unknown
}
