package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // purple
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
)

var StyleSymbols = map[string]string{
	"pass":   "✓",
	"fail":   "✗",
	"arrow":  "→",
	"bullet": "•",
}

func PrintSuccess(text string) {
	fmt.Println(successStyle.Render(text))
}

func PrintError(text string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(text))
}

func PrintWarning(text string) {
	fmt.Println(warningStyle.Render(text))
}

func PrintInfo(text string) {
	fmt.Println(infoStyle.Render(text))
}

func PrintDetail(text string) {
	fmt.Println(detailStyle.Render(text))
}

const progressBarWidth = 30

// RenderProgress draws a one-line transfer snapshot:
//
//	[██████████░░░░░░░░░░░░░░░░░░░░] 33.3% | 1.5 MiB/s | ETA: 01:23
//
// Unknown totals degrade to a byte counter; unknown speed and ETA print
// as N/A.
func RenderProgress(downloaded, total int64, speedBPS float64, etaSeconds int64) string {
	if total <= 0 {
		return fmt.Sprintf("downloaded %s | %s", humanize.IBytes(uint64(max(downloaded, 0))), formatSpeed(speedBPS))
	}
	pct := float64(downloaded) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	filled := int(progressBarWidth * pct / 100)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("[%s] %.1f%% | %s | ETA: %s", bar, pct, formatSpeed(speedBPS), formatETA(etaSeconds))
}

// PrintProgress overwrites the current terminal line.
func PrintProgress(line string) {
	fmt.Printf("\r%s", pendingStyle.Render(line))
}

// FormatSize renders a byte count for summaries.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration renders seconds as mm:ss.
func FormatDuration(seconds float64) string {
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatSpeed(speedBPS float64) string {
	if speedBPS <= 0 {
		return "N/A"
	}
	return humanize.IBytes(uint64(speedBPS)) + "/s"
}

func formatETA(etaSeconds int64) string {
	if etaSeconds <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%02d:%02d", etaSeconds/60, etaSeconds%60)
}
