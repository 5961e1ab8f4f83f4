package download

import "github.com/vidgrab/vidgrab/internal/platform"

// DownloadResult reports the outcome of one download attempt. Exactly
// one of FilePath and ErrorMessage is set, keyed by Success.
type DownloadResult struct {
	Success      bool
	FilePath     string
	ErrorMessage string
	VideoTitle   string
	FileSize     int64
	Duration     float64
	Platform     platform.Platform
}

// VideoInfo is a read-only metadata snapshot fetched without
// downloading.
type VideoInfo struct {
	Title              string
	Duration           float64
	ThumbnailURL       string
	AvailableQualities []string
	Platform           platform.Platform
	Uploader           string
}
