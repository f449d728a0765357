package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// ClipStore is the slice of the filesystem store clip handling needs.
type ClipStore interface {
	NewID() string
	FindVideo(id string) (string, error)
	TempAudioPath(id string) string
	ClipVideoPath(clipID string) string
	ClipAudioPath(clipID string) string
	RemoveClipAssets(clipID string)
}

// Cutter cuts time ranges out of stored media.
type Cutter interface {
	CutVideo(ctx context.Context, videoPath string, start, duration float64, outputPath string) error
	CutAudio(ctx context.Context, audioPath string, start, duration float64, outputPath string) error
}

// ProbeFunc reports a media file's duration in seconds.
type ProbeFunc func(ctx context.Context, path string) (float64, error)

type ClipsHandler struct {
	store  ClipStore
	cutter Cutter
	probe  ProbeFunc // optional
}

func NewClipsHandler(store ClipStore, cutter Cutter, probe ProbeFunc) *ClipsHandler {
	return &ClipsHandler{store: store, cutter: cutter, probe: probe}
}

// Generate cuts a clip pair out of a stored video. The video clip always
// comes from the source video; the audio clip is cut from the extracted
// track and skipped silently when that track does not exist. No cutting
// tool runs unless the video resolves.
func (h *ClipsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.ClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	videoPath, err := h.store.FindVideo(req.VideoID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Video file not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("resolving video: %v", err))
		return
	}

	clipID := h.store.NewID()
	duration := req.EndTime - req.StartTime

	if err := h.cutter.CutVideo(r.Context(), videoPath, req.StartTime, duration, h.store.ClipVideoPath(clipID)); err != nil {
		h.store.RemoveClipAssets(clipID)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error generating clip: %v", err))
		return
	}

	resp := models.ClipResponse{
		ClipID:    clipID,
		VideoClip: "/clips/" + clipID + ".mp4",
	}

	audioSource := h.store.TempAudioPath(req.VideoID)
	if _, err := os.Stat(audioSource); err == nil {
		if err := h.cutter.CutAudio(r.Context(), audioSource, req.StartTime, duration, h.store.ClipAudioPath(clipID)); err != nil {
			h.store.RemoveClipAssets(clipID)
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error generating audio clip: %v", err))
			return
		}
		audioURL := "/audio/" + clipID + ".wav"
		resp.AudioClip = &audioURL
	}

	if h.probe != nil {
		if probed, err := h.probe(r.Context(), videoPath); err == nil {
			resp.SourceDuration = &probed
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ServeVideo streams a generated video clip.
func (h *ClipsHandler) ServeVideo(w http.ResponseWriter, r *http.Request) {
	path := h.store.ClipVideoPath(mux.Vars(r)["clip_id"])
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "Clip not found")
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, path)
}

// ServeAudio streams a generated audio clip.
func (h *ClipsHandler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	path := h.store.ClipAudioPath(mux.Vars(r)["clip_id"])
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "Audio clip not found")
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}
