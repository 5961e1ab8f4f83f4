package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidgrab/vidgrab/internal/platform"
	"github.com/vidgrab/vidgrab/internal/ytdlp"
)

type stubExtractor struct {
	metadata    *ytdlp.RawInfo
	metadataErr error
	download    func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error)
}

func (s *stubExtractor) ExtractMetadata(ctx context.Context, url string) (*ytdlp.RawInfo, error) {
	return s.metadata, s.metadataErr
}

func (s *stubExtractor) Download(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
	return s.download(ctx, url, opts, hook)
}

func newManager(t *testing.T, stub *stubExtractor) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	m, err := NewManager(dir, stub)
	require.NoError(t, err)
	return m, dir
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("media"), 0644))
}

func TestDownloadSuccess(t *testing.T) {
	var stub stubExtractor
	var dir string
	stub.download = func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
		require.NoError(t, hook(ytdlp.ProgressEvent{Status: ytdlp.StatusDownloading, DownloadedBytes: 50, TotalBytes: 100}))
		require.NoError(t, hook(ytdlp.ProgressEvent{Status: ytdlp.StatusFinished, DownloadedBytes: 100, TotalBytes: 100}))
		path := filepath.Join(dir, "My Clip.mp4")
		writeFile(t, path)
		return &ytdlp.RawInfo{Title: "My Clip", Duration: 12.5, Filesize: 100, Filepath: path}, nil
	}
	m, d := newManager(t, &stub)
	dir = d

	var events []ytdlp.ProgressEvent
	res := m.Download(context.Background(), "https://youtu.be/x", NewCancelToken(), func(ev ytdlp.ProgressEvent) {
		events = append(events, ev)
	}, false)

	assert.True(t, res.Success)
	assert.Equal(t, filepath.Join(dir, "My Clip.mp4"), res.FilePath)
	assert.Empty(t, res.ErrorMessage)
	assert.Equal(t, "My Clip", res.VideoTitle)
	assert.Equal(t, int64(100), res.FileSize)
	assert.Equal(t, 12.5, res.Duration)
	assert.Equal(t, platform.YouTube, res.Platform)
	assert.FileExists(t, res.FilePath)

	// Only downloading-status events reach the callback.
	require.Len(t, events, 1)
	assert.Equal(t, ytdlp.StatusDownloading, events[0].Status)
}

func TestDownloadRenamesToSanitizedTitle(t *testing.T) {
	var stub stubExtractor
	var dir string
	stub.download = func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
		path := filepath.Join(dir, "clip_raw.mp4")
		writeFile(t, path)
		return &ytdlp.RawInfo{Title: "clip:raw", Filepath: path}, nil
	}
	m, d := newManager(t, &stub)
	dir = d

	res := m.Download(context.Background(), "https://youtu.be/x", nil, nil, false)
	require.True(t, res.Success)
	assert.Equal(t, filepath.Join(dir, "clipraw.mp4"), res.FilePath)
	assert.FileExists(t, res.FilePath)
	assert.NoFileExists(t, filepath.Join(dir, "clip_raw.mp4"))
}

func TestDownloadResolvesConflictSuffix(t *testing.T) {
	var stub stubExtractor
	var dir string
	stub.download = func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
		path := filepath.Join(dir, "clip_raw.mp4")
		writeFile(t, path)
		return &ytdlp.RawInfo{Title: "clip:raw", Filepath: path}, nil
	}
	m, d := newManager(t, &stub)
	dir = d
	writeFile(t, filepath.Join(dir, "clipraw.mp4"))
	writeFile(t, filepath.Join(dir, "clipraw (1).mp4"))

	res := m.Download(context.Background(), "https://youtu.be/x", nil, nil, false)
	require.True(t, res.Success)
	assert.Equal(t, filepath.Join(dir, "clipraw (2).mp4"), res.FilePath)
	assert.FileExists(t, res.FilePath)
}

func TestDownloadFailureClassified(t *testing.T) {
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			return nil, errors.New("yt-dlp exited with code 1: HTTP Error 404: Not Found")
		},
	}
	m, _ := newManager(t, &stub)

	res := m.Download(context.Background(), "https://www.instagram.com/p/x/", nil, nil, false)
	assert.False(t, res.Success)
	assert.Empty(t, res.FilePath)
	assert.Equal(t, "Video not found or has been deleted", res.ErrorMessage)
	assert.Empty(t, res.VideoTitle)
	assert.Equal(t, platform.Instagram, res.Platform)
}

func TestDownloadUnclassifiedErrorPassesThrough(t *testing.T) {
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			return nil, errors.New("some exotic failure")
		},
	}
	m, _ := newManager(t, &stub)

	res := m.Download(context.Background(), "https://t.me/c/1", nil, nil, false)
	assert.False(t, res.Success)
	assert.Equal(t, "some exotic failure", res.ErrorMessage)
	assert.Equal(t, platform.Telegram, res.Platform)
}

func TestDownloadCancellation(t *testing.T) {
	token := NewCancelToken()
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			require.NoError(t, hook(ytdlp.ProgressEvent{Status: ytdlp.StatusDownloading, DownloadedBytes: 1}))
			token.Cancel()
			if err := hook(ytdlp.ProgressEvent{Status: ytdlp.StatusDownloading, DownloadedBytes: 2}); err != nil {
				return nil, err
			}
			t.Fatal("expected hook to abort after cancellation")
			return nil, nil
		},
	}
	m, _ := newManager(t, &stub)

	res := m.Download(context.Background(), "https://youtu.be/x", token, nil, false)
	assert.False(t, res.Success)
	assert.Equal(t, "Download cancelled by user", res.ErrorMessage)
}

func TestDownloadAudioOnlySelectsAudioOptions(t *testing.T) {
	var gotOpts ytdlp.Options
	var dir string
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			gotOpts = opts
			path := filepath.Join(dir, "song.mp3")
			writeFile(t, path)
			return &ytdlp.RawInfo{Title: "song", Filepath: path}, nil
		},
	}
	m, d := newManager(t, &stub)
	dir = d

	res := m.Download(context.Background(), "https://youtu.be/x", nil, nil, true)
	require.True(t, res.Success)
	assert.Equal(t, ytdlp.PostProcessExtractAudio, gotOpts.PostProcess)
	assert.Equal(t, "mp3", gotOpts.AudioCodec)
	assert.Equal(t, "bestaudio/best", gotOpts.FormatExpression)
}

func TestDownloadFileSizeFallsBackToApprox(t *testing.T) {
	var dir string
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			path := filepath.Join(dir, "clip.mp4")
			writeFile(t, path)
			return &ytdlp.RawInfo{Title: "clip", FilesizeApprox: 4096, Filepath: path}, nil
		},
	}
	m, d := newManager(t, &stub)
	dir = d

	res := m.Download(context.Background(), "https://youtu.be/x", nil, nil, false)
	require.True(t, res.Success)
	assert.Equal(t, int64(4096), res.FileSize)
}

func TestFetchMetadata(t *testing.T) {
	stub := stubExtractor{
		metadata: &ytdlp.RawInfo{
			Title:     "Some Video",
			Duration:  90,
			Thumbnail: "https://img.example/x.jpg",
			Uploader:  "someone",
			Formats: []ytdlp.Format{
				{FormatID: "1", Ext: "mp4", Height: 1080},
				{FormatID: "2", Ext: "webm", Height: 720},
				{FormatID: "3", Ext: "mp4", Height: 1080},
				{FormatID: "4", Ext: "m4a", Height: 0},
			},
		},
	}
	m, _ := newManager(t, &stub)

	info, err := m.FetchMetadata(context.Background(), "https://www.facebook.com/watch/?v=1")
	require.NoError(t, err)
	assert.Equal(t, "Some Video", info.Title)
	assert.Equal(t, []string{"720p", "1080p"}, info.AvailableQualities)
	assert.Equal(t, platform.Facebook, info.Platform)
	assert.Equal(t, "someone", info.Uploader)
}

func TestFetchMetadataPropagatesErrors(t *testing.T) {
	wantErr := errors.New("extraction blew up")
	stub := stubExtractor{metadataErr: wantErr}
	m, _ := newManager(t, &stub)

	_, err := m.FetchMetadata(context.Background(), "https://youtu.be/x")
	assert.ErrorIs(t, err, wantErr)
}

func TestFetchMetadataDefaultsUnknown(t *testing.T) {
	stub := stubExtractor{metadata: &ytdlp.RawInfo{}}
	m, _ := newManager(t, &stub)

	info, err := m.FetchMetadata(context.Background(), "https://youtu.be/x")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", info.Title)
	assert.Equal(t, "Unknown", info.Uploader)
	assert.Empty(t, info.AvailableQualities)
}

func TestNewManagerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "videos")
	_, err := NewManager(dir, &stubExtractor{})
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestCancelTokenIsReadBeforeForwarding(t *testing.T) {
	// A cancelled token aborts even on the first event; the callback
	// never fires.
	token := NewCancelToken()
	token.Cancel()
	called := false
	stub := stubExtractor{
		download: func(ctx context.Context, url string, opts ytdlp.Options, hook ytdlp.ProgressFunc) (*ytdlp.RawInfo, error) {
			if err := hook(ytdlp.ProgressEvent{Status: ytdlp.StatusDownloading}); err != nil {
				return nil, err
			}
			return nil, errors.New("unreachable")
		},
	}
	m, _ := newManager(t, &stub)

	res := m.Download(context.Background(), "https://youtu.be/x", token, func(ytdlp.ProgressEvent) { called = true }, false)
	assert.False(t, res.Success)
	assert.False(t, called)
	assert.Equal(t, "Download cancelled by user", res.ErrorMessage)
}
