// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Transcriber backends selectable via the TRANSCRIBER environment variable.
const (
	TranscriberDisabled = "disabled"
	TranscriberWhisper  = "whisper"
)

// Config holds everything the service reads from the environment. Values are
// read once at startup. An empty DatabaseURL runs the service without the
// catalog; endpoints that need it report it as unavailable.
type Config struct {
	Port          string
	DataDir       string
	DatabaseURL   string
	Transcriber   string
	OpenAIKey     string
	OpenAIBaseURL string
	FFmpegBin     string
	FFprobeBin    string
	YTDLPBin      string
}

// Load reads the environment and validates the combinations that cannot be
// checked lazily, such as selecting the whisper transcriber without an API
// key.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		DataDir:       envOrDefault("DATA_DIR", "./data"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Transcriber:   envOrDefault("TRANSCRIBER", TranscriberDisabled),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		FFmpegBin:     envOrDefault("FFMPEG_BIN", "ffmpeg"),
		FFprobeBin:    envOrDefault("FFPROBE_BIN", "ffprobe"),
		YTDLPBin:      envOrDefault("YTDLP_BIN", "yt-dlp"),
	}

	switch cfg.Transcriber {
	case TranscriberDisabled:
	case TranscriberWhisper:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("TRANSCRIBER=%s requires OPENAI_API_KEY", TranscriberWhisper)
		}
	default:
		return nil, fmt.Errorf("unknown TRANSCRIBER %q (want %q or %q)",
			cfg.Transcriber, TranscriberDisabled, TranscriberWhisper)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
