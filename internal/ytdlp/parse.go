package ytdlp

import (
	"strconv"
	"strings"
)

// Line prefixes used to multiplex progress, metadata, and the final file
// path over yt-dlp's stdout.
const (
	progressPrefix = "VG:P|"
	infoPrefix     = "VG:I|"
	pathPrefix     = "VG:F|"
)

// progressTemplate makes yt-dlp emit one parseable line per progress
// event. Missing fields print as "NA".
const progressTemplate = "download:" + progressPrefix +
	"%(progress.status)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|" +
	"%(progress.total_bytes_estimate)s|%(progress.speed)s|%(progress.eta)s"

// infoTemplate prints a JSON subset of the info dict once extraction
// succeeds.
const infoTemplate = infoPrefix + "%(.{title,duration,filesize,filesize_approx})j"

// parseProgressLine decodes one progress-template line. ok is false for
// lines that do not carry a complete event.
func parseProgressLine(line string) (ProgressEvent, bool) {
	rest, found := strings.CutPrefix(line, progressPrefix)
	if !found {
		return ProgressEvent{}, false
	}
	fields := strings.Split(rest, "|")
	if len(fields) != 6 {
		return ProgressEvent{}, false
	}
	ev := ProgressEvent{
		Status:          fields[0],
		DownloadedBytes: parseByteField(fields[1]),
		TotalBytes:      parseByteField(fields[2]),
		SpeedBPS:        parseFloatField(fields[4]),
		ETASeconds:      parseByteField(fields[5]),
	}
	if ev.TotalBytes == 0 {
		ev.TotalBytes = parseByteField(fields[3])
	}
	return ev, true
}

// parseByteField tolerates "NA" and float renderings of byte counts.
func parseByteField(s string) int64 {
	return int64(parseFloatField(s))
}

func parseFloatField(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
