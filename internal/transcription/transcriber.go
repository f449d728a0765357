// Package transcription turns extracted audio into timestamped transcript
// segments. The backend is pluggable so deployments can swap the speech model
// without touching handler logic.
package transcription

import (
	"context"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// Transcriber converts an audio file into transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error)
}

// Disabled is the default backend for deployments without the memory to run a
// speech model. It produces no segments and never fails; callers that need
// segments can import captions instead.
type Disabled struct{}

func (Disabled) Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error) {
	return []models.Segment{}, nil
}
