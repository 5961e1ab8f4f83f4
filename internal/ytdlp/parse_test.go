package ytdlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgressLine(t *testing.T) {
	ev, ok := parseProgressLine("VG:P|downloading|1048576|4194304|NA|524288.5|6")
	assert.True(t, ok)
	assert.Equal(t, StatusDownloading, ev.Status)
	assert.Equal(t, int64(1048576), ev.DownloadedBytes)
	assert.Equal(t, int64(4194304), ev.TotalBytes)
	assert.Equal(t, 524288.5, ev.SpeedBPS)
	assert.Equal(t, int64(6), ev.ETASeconds)
}

func TestParseProgressLineEstimateFallback(t *testing.T) {
	ev, ok := parseProgressLine("VG:P|downloading|100|NA|2048.7|NA|NA")
	assert.True(t, ok)
	assert.Equal(t, int64(2048), ev.TotalBytes)
	assert.Zero(t, ev.SpeedBPS)
	assert.Zero(t, ev.ETASeconds)
}

func TestParseProgressLineFinished(t *testing.T) {
	ev, ok := parseProgressLine("VG:P|finished|4194304|4194304|NA|NA|0")
	assert.True(t, ok)
	assert.Equal(t, StatusFinished, ev.Status)
}

func TestParseProgressLineRejectsNoise(t *testing.T) {
	for _, line := range []string{
		"",
		"[download] Destination: video.mp4",
		"VG:P|downloading|100",
		"VG:I|{\"title\":\"x\"}",
	} {
		_, ok := parseProgressLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestOptionsArgsVideo(t *testing.T) {
	args := VideoOptions("/tmp/%(title)s.%(ext)s").args()
	assert.Equal(t, []string{
		"-f", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/bestvideo+bestaudio/best[ext=mp4]/best",
		"-o", "/tmp/%(title)s.%(ext)s",
		"--no-playlist",
		"--merge-output-format", "mp4",
		"--remux-video", "mp4",
		"--prefer-ffmpeg",
	}, args)
}

func TestOptionsArgsAudio(t *testing.T) {
	args := AudioOptions("/tmp/%(title)s.%(ext)s").args()
	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "mp3")
	assert.Contains(t, args, "192")
	assert.NotContains(t, args, "--merge-output-format")
}

func TestTailBuffer(t *testing.T) {
	b := newTailBuffer(2)
	b.Add("one")
	b.Add("  ")
	b.Add("two")
	b.Add("three")
	assert.Equal(t, "two; three", b.String())
}
