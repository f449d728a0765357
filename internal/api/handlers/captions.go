package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/transcription"
)

// ImportCaptions parses a WebVTT document into the same segment shape the
// transcriber produces, so deployments running without speech recognition
// can still feed /search. The document arrives as the multipart field
// "file" or as the raw request body.
func ImportCaptions(w http.ResponseWriter, r *http.Request) {
	content, err := captionsBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	segments, err := transcription.ParseVTT(content)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid captions: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, models.CaptionsResponse{Segments: segments})
}

func captionsBody(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("file is required")
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("reading captions file: %v", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("reading request body: %v", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("captions document is required")
	}
	return string(data), nil
}
