// Command transcribe extracts and transcribes the audio track of a local
// media file, printing the segments as JSON in the shape POST /search
// accepts. It needs TRANSCRIBER=whisper and an OPENAI_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/config"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/media"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/transcription"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	out := flag.String("o", "", "write segments JSON to this file instead of stdout")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: transcribe [-o segments.json] <media-file>")
	}
	mediaPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Transcriber != config.TranscriberWhisper {
		log.Fatalf("TRANSCRIBER=%s produces no segments; set TRANSCRIBER=whisper", cfg.Transcriber)
	}

	ffmpeg := media.NewFFmpeg(cfg.FFmpegBin)
	transcriber := transcription.NewWhisper(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	ctx := context.Background()

	// WAV input goes straight to the transcriber; anything else gets its
	// audio track extracted first.
	audioPath := mediaPath
	if !strings.EqualFold(filepath.Ext(mediaPath), ".wav") {
		tmp, err := os.CreateTemp("", "transcribe-*.wav")
		if err != nil {
			log.Fatalf("Creating temp audio file: %v", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := ffmpeg.ExtractAudio(ctx, mediaPath, tmp.Name()); err != nil {
			log.Fatalf("Extracting audio: %v", err)
		}
		audioPath = tmp.Name()
	}

	segments, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Fatalf("Transcription failed: %v", err)
	}

	dest := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Creating output file: %v", err)
		}
		defer f.Close()
		dest = f
	}

	enc := json.NewEncoder(dest)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]models.Segment{"segments": segments}); err != nil {
		log.Fatalf("Writing segments: %v", err)
	}
	log.Printf("Transcribed %s: %d segments", mediaPath, len(segments))
}
