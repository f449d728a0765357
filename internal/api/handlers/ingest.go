package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/media"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// Ingestor is the slice of the ingestion service the handlers need.
type Ingestor interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*models.IngestResponse, error)
	FromURL(ctx context.Context, url string) (*models.IngestResponse, error)
}

type IngestHandler struct {
	svc Ingestor
}

func NewIngestHandler(svc Ingestor) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// Upload ingests a video sent as the multipart field "file".
func (h *IngestHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	resp, err := h.svc.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing upload: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// FromYouTube ingests a video fetched from the form field "url". The three
// download failure classes keep their distinct messages and status codes.
func (h *IngestHandler) FromYouTube(w http.ResponseWriter, r *http.Request) {
	url := r.FormValue("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	resp, err := h.svc.FromURL(r.Context(), url)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, media.ErrDownloadFailed):
		writeError(w, http.StatusBadRequest, "Failed to download video. Please check the URL and try again.")
	case errors.Is(err, media.ErrDownloader):
		writeError(w, http.StatusInternalServerError, "YouTube downloader error. Please ensure yt-dlp is installed.")
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing YouTube video: %v", err))
	}
}
