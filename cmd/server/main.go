package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/api"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/api/handlers"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/config"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/embeddings"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/ingest"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/media"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/db"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/postgres"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/transcription"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Prepare the data directories before accepting any traffic.
	store := storage.New(cfg.DataDir)
	if err := store.EnsureDirs(); err != nil {
		log.Fatalf("Failed to prepare data directories: %v", err)
	}

	ffmpeg := media.NewFFmpeg(cfg.FFmpegBin)
	prober := media.NewProber(cfg.FFprobeBin)
	downloader := media.NewDownloader(cfg.YTDLPBin)

	var transcriber transcription.Transcriber = transcription.Disabled{}
	if cfg.Transcriber == config.TranscriberWhisper {
		transcriber = transcription.NewWhisper(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	}
	log.Printf("Transcription backend: %s", cfg.Transcriber)

	ingestCfg := ingest.Config{
		Store:       store,
		Extractor:   ffmpeg,
		Downloader:  downloader,
		Transcriber: transcriber,
	}

	// The catalog is optional: without DATABASE_URL the service runs
	// filesystem-only and the catalog endpoints answer 503.
	var videoCatalog handlers.VideoCatalog
	var semanticIndex handlers.SemanticIndex
	var queryEmbedder handlers.QueryEmbedder
	if cfg.DatabaseURL != "" {
		database, err := db.NewConnection(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.Close()
		if err := db.EnsureSchema(database); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}

		videoRepo := postgres.NewVideoRepository(database)
		segmentRepo := postgres.NewSegmentRepository(database)
		ingestCfg.Videos = videoRepo
		ingestCfg.Segments = segmentRepo
		videoCatalog = videoRepo
		semanticIndex = segmentRepo

		if cfg.OpenAIKey != "" {
			embedder := embeddings.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
			ingestCfg.Embedder = embedder
			queryEmbedder = embedder
		}
	} else {
		log.Println("DATABASE_URL not set; catalog endpoints disabled")
	}

	router := api.NewRouter(api.Handlers{
		Ingest:  handlers.NewIngestHandler(ingest.New(ingestCfg)),
		Clips:   handlers.NewClipsHandler(store, ffmpeg, prober.Duration),
		Catalog: handlers.NewCatalogHandler(videoCatalog, semanticIndex, queryEmbedder),
	})

	log.Printf("Starting HTTP server on :%s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
