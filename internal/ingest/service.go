// Package ingest orchestrates getting a video into the store: persist the
// bytes, extract the audio track, transcribe it, and clean up after
// failures so no half-ingested assets linger.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/media"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/transcription"
)

// AudioExtractor pulls the audio track out of a stored video.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Fetcher downloads a remote video into the store's video directory using a
// yt-dlp style output template.
type Fetcher interface {
	Fetch(ctx context.Context, url, outputTemplate string) error
}

// VideoCatalog and SegmentCatalog are the optional database-backed
// bookkeeping. Both may be nil; ingestion then runs filesystem-only.
type VideoCatalog interface {
	Create(ctx context.Context, id, source, originalName string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type SegmentCatalog interface {
	SaveSegments(ctx context.Context, videoID string, segments []models.Segment, vectors [][]float32) error
}

// Embedder turns segment texts into vectors for the catalog. May be nil.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Config wires a Service. Store, Extractor, Downloader and Transcriber are
// required; the catalog fields are optional.
type Config struct {
	Store       *storage.Store
	Extractor   AudioExtractor
	Downloader  Fetcher
	Transcriber transcription.Transcriber
	Videos      VideoCatalog
	Segments    SegmentCatalog
	Embedder    Embedder
}

type Service struct {
	store       *storage.Store
	extractor   AudioExtractor
	downloader  Fetcher
	transcriber transcription.Transcriber
	videos      VideoCatalog
	segments    SegmentCatalog
	embedder    Embedder
}

func New(cfg Config) *Service {
	return &Service{
		store:       cfg.Store,
		extractor:   cfg.Extractor,
		downloader:  cfg.Downloader,
		transcriber: cfg.Transcriber,
		videos:      cfg.Videos,
		segments:    cfg.Segments,
		embedder:    cfg.Embedder,
	}
}

// Upload ingests a video from an uploaded file. The file is stored under a
// fresh id before any processing; every later failure removes it again.
func (s *Service) Upload(ctx context.Context, filename string, file io.Reader) (*models.IngestResponse, error) {
	id := s.store.NewID()
	videoPath, err := s.store.SaveUpload(id, filename, file)
	if err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}
	return s.process(ctx, id, "upload", filename, videoPath)
}

// FromURL ingests a video fetched by the downloader. The download either
// fails outright (the downloader's error is returned) or claims success
// without producing a file, which surfaces as media.ErrDownloadFailed.
func (s *Service) FromURL(ctx context.Context, url string) (*models.IngestResponse, error) {
	id := s.store.NewID()
	if err := s.downloader.Fetch(ctx, url, s.store.VideoTemplate(id)); err != nil {
		s.store.RemoveVideoAssets(id)
		return nil, err
	}

	videoPath, err := s.store.FindVideo(id)
	if err != nil {
		s.store.RemoveVideoAssets(id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("locating downloaded video: %w", media.ErrDownloadFailed)
		}
		return nil, err
	}
	return s.process(ctx, id, "youtube", url, videoPath)
}

func (s *Service) process(ctx context.Context, id, source, originalName, videoPath string) (*models.IngestResponse, error) {
	if err := s.store.WriteRecord(storage.Record{
		ID:           id,
		Source:       source,
		OriginalName: originalName,
		VideoPath:    videoPath,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		s.store.RemoveVideoAssets(id)
		return nil, err
	}
	s.catalogCreate(ctx, id, source, originalName)

	audioPath := s.store.TempAudioPath(id)
	if err := s.extractor.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		s.store.RemoveVideoAssets(id)
		s.catalogStatus(ctx, id, models.StatusFailed)
		return nil, fmt.Errorf("extracting audio: %w", err)
	}

	segments, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		s.store.RemoveVideoAssets(id)
		s.catalogStatus(ctx, id, models.StatusFailed)
		return nil, fmt.Errorf("transcribing audio: %w", err)
	}
	// An empty transcript must still encode as "segments": [] in the
	// response, whatever slice the backend answered with.
	if segments == nil {
		segments = []models.Segment{}
	}

	s.catalogSegments(ctx, id, segments)
	s.catalogStatus(ctx, id, models.StatusReady)

	log.Printf("ingested video %s from %s (%d segments)", id, source, len(segments))
	return &models.IngestResponse{VideoID: id, Segments: segments}, nil
}

// Catalog writes are best effort: the filesystem is the source of truth and
// an unreachable database must not fail an ingestion that already produced
// its files.

func (s *Service) catalogCreate(ctx context.Context, id, source, originalName string) {
	if s.videos == nil {
		return
	}
	if err := s.videos.Create(ctx, id, source, originalName); err != nil {
		log.Printf("catalog: recording video %s failed: %v", id, err)
	}
}

func (s *Service) catalogStatus(ctx context.Context, id, status string) {
	if s.videos == nil {
		return
	}
	if err := s.videos.UpdateStatus(ctx, id, status); err != nil {
		log.Printf("catalog: updating video %s to %s failed: %v", id, status, err)
	}
}

func (s *Service) catalogSegments(ctx context.Context, id string, segments []models.Segment) {
	if s.segments == nil || len(segments) == 0 {
		return
	}

	var vectors [][]float32
	if s.embedder != nil {
		texts := make([]string, len(segments))
		for i, seg := range segments {
			texts[i] = seg.Text
		}
		embedded, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Printf("catalog: embedding segments for %s failed: %v", id, err)
		} else {
			vectors = embedded
		}
	}

	if err := s.segments.SaveSegments(ctx, id, segments, vectors); err != nil {
		log.Printf("catalog: saving segments for %s failed: %v", id, err)
	}
}
