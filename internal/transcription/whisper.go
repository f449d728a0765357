package transcription

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// Whisper transcribes audio through a whisper-compatible transcription API.
// A custom base URL lets it target any endpoint that speaks the OpenAI audio
// protocol, not just api.openai.com.
type Whisper struct {
	client *openai.Client
	model  string
}

func NewWhisper(apiKey, baseURL string) *Whisper {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Whisper{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.Whisper1,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	segments := make([]models.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, models.Segment{Text: text, Start: s.Start, End: s.End})
	}

	// Some whisper-compatible servers return plain text without segment
	// timing; fall back to one segment spanning the reported duration.
	if len(segments) == 0 && strings.TrimSpace(resp.Text) != "" {
		segments = append(segments, models.Segment{
			Text:  strings.TrimSpace(resp.Text),
			Start: 0,
			End:   resp.Duration,
		})
	}
	return segments, nil
}
