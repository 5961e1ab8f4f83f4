// Package fileutil holds filename and directory bookkeeping for downloads.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reserves headroom for an extension and a conflict suffix under the
// usual 255-character filename limit.
const maxTitleLength = 200

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// SanitizeTitle makes a video title safe to use as a filename. It strips
// characters illegal on common filesystems, collapses whitespace runs,
// trims, and truncates to 200 characters. Empty results become "video".
func SanitizeTitle(title string) string {
	s := illegalChars.ReplaceAllString(title, "")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxTitleLength {
		s = strings.TrimSpace(string([]rune(s)[:maxTitleLength]))
	}
	if s == "" {
		return "video"
	}
	return s
}

// ResolveConflict returns path if nothing exists there, otherwise the
// first free "stem (n).ext" candidate for n = 1, 2, 3, ...
//
// The existence check is not atomic with the eventual file creation; a
// competing write between resolution and creation can still collide.
// Accepted limitation for a single-user interactive tool.
func ResolveConflict(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// EnsureDir creates the directory and all missing ancestors.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DefaultDownloadDir is where downloads land when no directory is
// configured.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "VideoDownloader")
	}
	return filepath.Join(home, "Downloads", "VideoDownloader")
}
