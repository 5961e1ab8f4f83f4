package ytdlp

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/vidgrab/vidgrab/utils"
)

const releaseBaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

// LookupBinary finds yt-dlp on PATH or next to the executable, fetching
// the matching release binary when neither exists.
func LookupBinary() (string, error) {
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		return path, nil
	}
	if exe, err := os.Executable(); err == nil {
		for _, name := range []string{"yt-dlp", "yt-dlp.exe"} {
			candidate := filepath.Join(filepath.Dir(exe), name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return bootstrapBinary()
}

// releaseAsset maps GOOS/GOARCH to the yt-dlp release artifact name.
func releaseAsset() (string, error) {
	switch {
	case runtime.GOOS == "windows" && runtime.GOARCH == "amd64":
		return "yt-dlp.exe", nil
	case runtime.GOOS == "linux" && runtime.GOARCH == "amd64":
		return "yt-dlp_linux", nil
	case runtime.GOOS == "linux" && runtime.GOARCH == "arm64":
		return "yt-dlp_linux_aarch64", nil
	case runtime.GOOS == "darwin":
		return "yt-dlp_macos", nil
	default:
		return "", fmt.Errorf("unsupported OS/architecture combination: %s/%s", runtime.GOOS, runtime.GOARCH)
	}
}

func bootstrapBinary() (string, error) {
	log := utils.GetLogger("ytdlp")
	asset, err := releaseAsset()
	if err != nil {
		return "", err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	binDir := filepath.Join(home, ".vidgrab", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return "", fmt.Errorf("creating bin directory: %w", err)
	}
	binPath := filepath.Join(binDir, asset)
	log.Info().Str("asset", asset).Msg("yt-dlp not found, fetching release binary")

	client := &http.Client{Timeout: 3 * time.Minute}
	retry := retrypolicy.Builder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			return err != nil || resp.StatusCode >= 500
		}).
		WithBackoff(time.Second, 10*time.Second).
		WithMaxRetries(3).
		Build()
	resp, err := failsafe.Get(func() (*http.Response, error) {
		return client.Get(releaseBaseURL + asset)
	}, retry)
	if err != nil {
		return "", fmt.Errorf("downloading yt-dlp: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading yt-dlp: status code %d", resp.StatusCode)
	}

	out, err := os.OpenFile(binPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("creating yt-dlp binary: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing yt-dlp binary: %w", err)
	}
	log.Debug().Str("path", binPath).Msg("yt-dlp binary installed")
	return binPath, nil
}
