// Package ytdlp drives the yt-dlp binary as the extraction engine:
// platform negotiation, format selection, retrieval, and muxing all
// happen inside the child process. This package only shapes its
// invocation and parses its output.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/utils"
)

// Engine runs yt-dlp invocations.
type Engine struct {
	binPath string
	log     zerolog.Logger
}

// New locates (or bootstraps) the yt-dlp binary.
func New() (*Engine, error) {
	bin, err := LookupBinary()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found and could not be fetched: %w", err)
	}
	return &Engine{binPath: bin, log: utils.GetLogger("ytdlp")}, nil
}

// ExtractMetadata fetches the info dict without writing any file.
func (e *Engine) ExtractMetadata(ctx context.Context, url string) (*RawInfo, error) {
	cmd := exec.CommandContext(ctx, e.binPath, "-J", "--no-warnings", "--no-playlist", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, engineError(err, stderr.String())
	}
	var info RawInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decoding yt-dlp metadata: %w", err)
	}
	return &info, nil
}

// Download retrieves the media for url, forwarding progress events to
// hook. A non-nil hook error kills the child process and is returned
// unchanged. On success the returned RawInfo carries the path yt-dlp
// actually wrote.
func (e *Engine) Download(ctx context.Context, url string, opts Options, hook ProgressFunc) (*RawInfo, error) {
	args := []string{
		"--no-warnings",
		"--newline",
		"--progress",
		"--progress-delta", "1",
		"--progress-template", progressTemplate,
		"--print", infoTemplate,
		"--print", "after_move:" + pathPrefix + "%(filepath)s",
		"--no-simulate",
	}
	args = append(args, opts.args()...)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, e.binPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting yt-dlp: %w", err)
	}
	e.log.Debug().Strs("args", args).Msg("yt-dlp started")

	tail := newTailBuffer(8)
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			tail.Add(scanner.Text())
		}
	}()

	info := &RawInfo{}
	var hookErr error
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, progressPrefix):
			ev, ok := parseProgressLine(line)
			if !ok || hook == nil || hookErr != nil {
				continue
			}
			if err := hook(ev); err != nil {
				hookErr = err
				_ = cmd.Process.Kill()
			}
		case strings.HasPrefix(line, infoPrefix):
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, infoPrefix)), info); err != nil {
				e.log.Debug().Err(err).Msg("undecodable info line")
			}
		case strings.HasPrefix(line, pathPrefix):
			info.Filepath = strings.TrimPrefix(line, pathPrefix)
		}
	}
	<-stderrDone
	waitErr := cmd.Wait()

	if hookErr != nil {
		return nil, hookErr
	}
	if waitErr != nil {
		return nil, engineError(waitErr, tail.String())
	}
	if info.Filepath == "" {
		return nil, errors.New("yt-dlp reported no output file")
	}
	return info, nil
}

// engineError folds captured stderr into the error so the raw engine
// wording survives for classification.
func engineError(err error, stderrText string) error {
	stderrText = strings.TrimSpace(stderrText)
	if stderrText == "" {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("yt-dlp exited with code %d: %s", exitErr.ExitCode(), stderrText)
	}
	return fmt.Errorf("yt-dlp failed: %s: %w", stderrText, err)
}

// tailBuffer keeps the last n lines of engine output for error
// reporting.
type tailBuffer struct {
	n     int
	lines []string
}

func newTailBuffer(n int) *tailBuffer {
	return &tailBuffer{n: n}
}

func (b *tailBuffer) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	b.lines = append(b.lines, line)
	if len(b.lines) > b.n {
		b.lines = b.lines[len(b.lines)-b.n:]
	}
}

func (b *tailBuffer) String() string {
	return strings.Join(b.lines, "; ")
}
