// Package search implements keyword lookup over transcript segments.
package search

import (
	"math"
	"strings"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// DefaultWindow is the padding in seconds added around a matched segment when
// the request does not specify one.
const DefaultWindow = 7.0

// Keyword returns a match for every segment whose text contains keyword as a
// case-insensitive substring, preserving the input order. Each match carries
// a clip window padded by window seconds on both sides: the start is clamped
// at zero, the end is left unclamped (clip extraction tolerates ranges past
// the end of the media). Times are rounded to two decimal places and the
// matched text is stripped of surrounding whitespace.
//
// An empty keyword matches every segment. No matches yields an empty, non-nil
// slice. The function is pure: identical inputs produce identical output and
// the input slice is never modified.
func Keyword(segments []models.Segment, keyword string, window float64) []models.Match {
	needle := strings.ToLower(keyword)
	matches := make([]models.Match, 0)
	for _, seg := range segments {
		if !strings.Contains(strings.ToLower(seg.Text), needle) {
			continue
		}
		start := seg.Start - window
		if start < 0 {
			start = 0
		}
		matches = append(matches, models.Match{
			FoundAt:   round2(seg.Start),
			ClipStart: round2(start),
			ClipEnd:   round2(seg.End + window),
			Text:      strings.TrimSpace(seg.Text),
		})
	}
	return matches
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
