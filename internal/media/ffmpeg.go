// Package media wraps the external tools that do the heavy lifting: ffmpeg
// for audio extraction and clip cutting, ffprobe for duration probing, and
// yt-dlp for remote fetches. Everything here is a thin process boundary; the
// tools own decoding and encoding entirely.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpeg invokes the ffmpeg binary. The zero value is not usable; construct
// with NewFFmpeg.
type FFmpeg struct {
	bin string
}

// NewFFmpeg returns an FFmpeg runner. An empty bin falls back to "ffmpeg"
// resolved via PATH.
func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin}
}

// ExtractAudio writes the audio track of videoPath to audioPath as mono
// 16kHz WAV, the layout speech models expect.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	return f.run(ctx, extractAudioArgs(videoPath, audioPath))
}

// CutVideo writes the [start, start+duration) range of videoPath to
// outputPath. Stream copy is attempted first for speed; when ffmpeg rejects
// it (codec or container quirks) the clip is re-encoded to H.264/AAC. A
// non-positive duration is passed through and surfaces as the tool's error.
func (f *FFmpeg) CutVideo(ctx context.Context, videoPath string, start, duration float64, outputPath string) error {
	if err := f.run(ctx, cutVideoCopyArgs(videoPath, start, duration, outputPath)); err == nil {
		return nil
	}
	return f.run(ctx, cutVideoEncodeArgs(videoPath, start, duration, outputPath))
}

// CutAudio writes the [start, start+duration) range of audioPath to
// outputPath, keeping the mono 16kHz layout of the extracted source.
func (f *FFmpeg) CutAudio(ctx context.Context, audioPath string, start, duration float64, outputPath string) error {
	return f.run(ctx, cutAudioArgs(audioPath, start, duration, outputPath))
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func extractAudioArgs(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		audioPath,
	}
}

func cutVideoCopyArgs(videoPath string, start, duration float64, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c", "copy",
		outputPath,
	}
}

func cutVideoEncodeArgs(videoPath string, start, duration float64, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		outputPath,
	}
}

func cutAudioArgs(audioPath string, start, duration float64, outputPath string) []string {
	return []string{
		"-y",
		"-i", audioPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	}
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
