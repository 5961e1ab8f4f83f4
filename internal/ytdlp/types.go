package ytdlp

// Progress statuses reported by the engine.
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
)

// ProgressEvent is a point-in-time snapshot of transfer state. Zero
// values mean the engine did not report the field.
type ProgressEvent struct {
	Status          string
	DownloadedBytes int64
	// TotalBytes is the exact total when known, otherwise the engine's
	// estimate, otherwise 0.
	TotalBytes int64
	SpeedBPS   float64
	ETASeconds int64
}

// ProgressFunc receives progress events as the engine emits them.
// Returning a non-nil error aborts the download with that error.
type ProgressFunc func(ProgressEvent) error

// RawInfo is the metadata record the engine reports for a video.
type RawInfo struct {
	Title          string   `json:"title"`
	Duration       float64  `json:"duration"`
	Thumbnail      string   `json:"thumbnail"`
	Uploader       string   `json:"uploader"`
	Filesize       int64    `json:"filesize"`
	FilesizeApprox int64    `json:"filesize_approx"`
	Filepath       string   `json:"filepath"`
	Formats        []Format `json:"formats"`
}

// Format is one downloadable rendition. Height is 0 for audio-only
// entries and for formats that expose no vertical resolution.
type Format struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Height   int    `json:"height"`
}
