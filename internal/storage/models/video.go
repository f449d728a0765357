package models

import "time"

// Video statuses as stored in the catalog.
const (
	StatusPending = "pending"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Video is a catalog record for an ingested video. The filesystem remains the
// source of truth for the media itself; the catalog only tracks provenance.
type Video struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	OriginalName string    `json:"original_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IngestResponse is returned by both the upload and the remote-fetch paths.
type IngestResponse struct {
	VideoID  string    `json:"video_id"`
	Segments []Segment `json:"segments"`
}

type ClipRequest struct {
	VideoID   string  `json:"video_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type ClipResponse struct {
	ClipID    string `json:"clip_id"`
	VideoClip string `json:"video_clip"`
	// AudioClip is null when the source video has no extracted audio to cut.
	AudioClip *string `json:"audio_clip"`
	// SourceDuration is the probed duration of the source video in seconds,
	// omitted when probing is unavailable.
	SourceDuration *float64 `json:"source_duration,omitempty"`
}

type CaptionsResponse struct {
	Segments []Segment `json:"segments"`
}

type SemanticSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SemanticSearchResponse struct {
	Query   string          `json:"query"`
	Results []SemanticMatch `json:"results"`
}

type SemanticMatch struct {
	VideoID    string  `json:"video_id"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Similarity float64 `json:"similarity"`
}
