package models

// Segment is a timestamped span of transcribed speech. Segments are produced
// by a transcription backend or supplied by the caller for keyword search;
// times are in seconds from the start of the media.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Match is one keyword hit with the padded clip window around it.
type Match struct {
	FoundAt   float64 `json:"found_at"`
	ClipStart float64 `json:"clip_start"`
	ClipEnd   float64 `json:"clip_end"`
	Text      string  `json:"text"`
}

type SearchRequest struct {
	Segments []Segment `json:"segments"`
	Keyword  string    `json:"keyword"`
	// Window is the padding in seconds added around a matched segment.
	// A nil window means the caller did not send one and the default applies;
	// an explicit 0 is honored (clip exactly the segment bounds).
	Window *float64 `json:"window"`
}

type SearchResponse struct {
	Keyword string  `json:"keyword"`
	Matches []Match `json:"matches"`
}
