// Package download coordinates single download attempts: it derives the
// platform and output policy, delegates retrieval to the extraction
// engine, and shapes the outcome into a DownloadResult.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/fileutil"
	"github.com/vidgrab/vidgrab/internal/platform"
	"github.com/vidgrab/vidgrab/internal/ytdlp"
	"github.com/vidgrab/vidgrab/utils"
)

// ErrCancelled aborts the engine when the cancel token trips. Its text
// feeds the classifier, which maps it to the user-facing message.
var ErrCancelled = errors.New("download cancelled by user")

// Extractor is the slice of the extraction engine the manager consumes.
type Extractor interface {
	ExtractMetadata(ctx context.Context, url string) (*ytdlp.RawInfo, error)
	Download(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error)
}

// ProgressFunc receives downloading-status events for presentation. It
// must not block for long; it runs inline with the engine's output
// scanning.
type ProgressFunc func(ytdlp.ProgressEvent)

// Manager owns a target directory and runs one blocking download at a
// time against it.
type Manager struct {
	downloadDir string
	engine      Extractor
	hasFFmpeg   bool
	log         zerolog.Logger
}

// NewManager creates the download directory (with ancestors) and probes
// for ffmpeg.
func NewManager(downloadDir string, engine Extractor) (*Manager, error) {
	if err := fileutil.EnsureDir(downloadDir); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	_, ffmpegErr := exec.LookPath("ffmpeg")
	return &Manager{
		downloadDir: downloadDir,
		engine:      engine,
		hasFFmpeg:   ffmpegErr == nil,
		log:         utils.GetLogger("download"),
	}, nil
}

// HasFFmpeg reports whether ffmpeg is on PATH. Without it the engine
// may fail to merge separate streams or convert audio.
func (m *Manager) HasFFmpeg() bool {
	return m.hasFFmpeg
}

// FetchMetadata returns the metadata snapshot for url without writing a
// file. Engine failures propagate unchanged; the caller decides how to
// report them.
func (m *Manager) FetchMetadata(ctx context.Context, url string) (*VideoInfo, error) {
	info, err := m.engine.ExtractMetadata(ctx, url)
	if err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	var heights []int
	for _, f := range info.Formats {
		if f.Height > 0 && !seen[f.Height] {
			seen[f.Height] = true
			heights = append(heights, f.Height)
		}
	}
	sort.Ints(heights)
	qualities := make([]string, 0, len(heights))
	for _, h := range heights {
		qualities = append(qualities, fmt.Sprintf("%dp", h))
	}

	return &VideoInfo{
		Title:              defaultString(info.Title, "Unknown"),
		Duration:           info.Duration,
		ThumbnailURL:       info.Thumbnail,
		AvailableQualities: qualities,
		Platform:           platform.Detect(url),
		Uploader:           defaultString(info.Uploader, "Unknown"),
	}, nil
}

// Download runs one download attempt. Engine failures never escape;
// they are classified and folded into the returned result, so callers
// need no error handling around this method.
func (m *Manager) Download(ctx context.Context, url string, token *CancelToken, onProgress ProgressFunc, audioOnly bool) DownloadResult {
	plat := platform.Detect(url)
	log := m.log.With().Str("job", uuid.NewString()).Str("platform", plat.String()).Logger()
	log.Info().Str("url", url).Bool("audioOnly", audioOnly).Msg("starting download")

	outputTemplate := filepath.Join(m.downloadDir, "%(title)s.%(ext)s")
	opts := ytdlp.VideoOptions(outputTemplate)
	if audioOnly {
		opts = ytdlp.AudioOptions(outputTemplate)
	}

	hook := func(ev ytdlp.ProgressEvent) error {
		if token != nil && token.Cancelled() {
			return ErrCancelled
		}
		if ev.Status == ytdlp.StatusDownloading && onProgress != nil {
			onProgress(ev)
		}
		return nil
	}

	info, err := m.engine.Download(ctx, url, opts, hook)
	if err != nil {
		log.Error().Err(err).Msg("download failed")
		return DownloadResult{
			Success:      false,
			ErrorMessage: ClassifyError(err.Error()),
			Platform:     plat,
		}
	}

	finalPath, err := m.placeOutput(info)
	if err != nil {
		log.Error().Err(err).Msg("failed to move output into place")
		return DownloadResult{
			Success:      false,
			ErrorMessage: err.Error(),
			Platform:     plat,
		}
	}

	size := info.Filesize
	if size == 0 {
		size = info.FilesizeApprox
	}
	log.Info().Str("path", finalPath).Int64("size", size).Msg("download complete")
	return DownloadResult{
		Success:    true,
		FilePath:   finalPath,
		VideoTitle: defaultString(info.Title, "Unknown"),
		FileSize:   size,
		Duration:   info.Duration,
		Platform:   plat,
	}
}

// placeOutput normalizes the written file's name to the sanitized title
// and resolves conflicts with files that appeared after the output
// template was built. The engine's own file never counts as a conflict
// against itself.
func (m *Manager) placeOutput(info *ytdlp.RawInfo) (string, error) {
	written := info.Filepath
	ext := filepath.Ext(written)
	desired := filepath.Join(m.downloadDir, fileutil.SanitizeTitle(info.Title)+ext)
	if desired == written {
		return written, nil
	}
	resolved := fileutil.ResolveConflict(desired)
	if resolved == written {
		return written, nil
	}
	if _, err := os.Stat(written); err != nil {
		// The engine reported a path it did not leave behind; trust it.
		return written, nil
	}
	if err := os.Rename(written, resolved); err != nil {
		return "", fmt.Errorf("failed to move output into place: %v", err)
	}
	return resolved, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
