package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrDownloadFailed means the downloader ran but no video file appeared,
	// typically a dead or unsupported URL.
	ErrDownloadFailed = errors.New("video download failed")

	// ErrDownloader means the downloader tool itself could not be run or
	// exited non-zero on every attempt.
	ErrDownloader = errors.New("downloader error")
)

// Downloader invokes yt-dlp to fetch remote videos.
type Downloader struct {
	bin string
}

// NewDownloader returns a Downloader. An empty bin falls back to "yt-dlp"
// resolved via PATH.
func NewDownloader(bin string) *Downloader {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Downloader{bin: bin}
}

// Fetch downloads url using the given output template (yt-dlp syntax, e.g.
// "/data/videos/<id>.%(ext)s"). MP4 is requested first; if that attempt
// fails the download is retried without a format constraint so formats
// yt-dlp cannot remux still come through. A playlist URL fetches only the
// video it points at, never the whole list; the template names a single
// output file. Failures on both attempts wrap ErrDownloader. Fetch does not
// verify that a file was produced; callers locate the output by its template
// prefix.
func (d *Downloader) Fetch(ctx context.Context, url, outputTemplate string) error {
	if err := d.run(ctx, fetchArgs(url, outputTemplate, true)); err == nil {
		return nil
	}
	if err := d.run(ctx, fetchArgs(url, outputTemplate, false)); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloader, err)
	}
	return nil
}

func (d *Downloader) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, d.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w\nstderr: %s", d.bin, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func fetchArgs(url, outputTemplate string, preferMP4 bool) []string {
	args := []string{"--no-playlist"}
	if preferMP4 {
		args = append(args, "-f", "best[ext=mp4]/best")
	}
	return append(args, "-o", outputTemplate, url)
}
