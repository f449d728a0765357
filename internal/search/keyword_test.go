package search

import (
	"math"
	"reflect"
	"testing"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		name     string
		segments []models.Segment
		keyword  string
		window   float64
		want     []models.Match
	}{
		{
			name:     "single match with padding",
			segments: []models.Segment{{Text: "Hello world", Start: 10.0, End: 12.0}},
			keyword:  "world",
			window:   5,
			want:     []models.Match{{FoundAt: 10.0, ClipStart: 5.0, ClipEnd: 17.0, Text: "Hello world"}},
		},
		{
			name:     "no matches yields empty list",
			segments: []models.Segment{{Text: "Hello world", Start: 10.0, End: 12.0}},
			keyword:  "absent",
			window:   5,
			want:     []models.Match{},
		},
		{
			name:     "window start clamps at zero",
			segments: []models.Segment{{Text: "intro", Start: 2.0, End: 4.0}},
			keyword:  "intro",
			window:   7,
			want:     []models.Match{{FoundAt: 2.0, ClipStart: 0, ClipEnd: 11.0, Text: "intro"}},
		},
		{
			name:     "case-insensitive match",
			segments: []models.Segment{{Text: "Hello World", Start: 1.0, End: 2.0}},
			keyword:  "hello WORLD",
			window:   0,
			want:     []models.Match{{FoundAt: 1.0, ClipStart: 1.0, ClipEnd: 2.0, Text: "Hello World"}},
		},
		{
			name: "empty keyword matches every segment",
			segments: []models.Segment{
				{Text: "one", Start: 0, End: 1},
				{Text: "two", Start: 1, End: 2},
			},
			keyword: "",
			window:  1,
			want: []models.Match{
				{FoundAt: 0, ClipStart: 0, ClipEnd: 2, Text: "one"},
				{FoundAt: 1, ClipStart: 0, ClipEnd: 3, Text: "two"},
			},
		},
		{
			name: "matches preserve input order and skip non-matches",
			segments: []models.Segment{
				{Text: "go is fun", Start: 0, End: 3},
				{Text: "python break", Start: 3, End: 6},
				{Text: "more go here", Start: 6, End: 9},
			},
			keyword: "go",
			window:  1,
			want: []models.Match{
				{FoundAt: 0, ClipStart: 0, ClipEnd: 4, Text: "go is fun"},
				{FoundAt: 6, ClipStart: 5, ClipEnd: 10, Text: "more go here"},
			},
		},
		{
			name:     "surrounding whitespace stripped from text",
			segments: []models.Segment{{Text: "  padded text \n", Start: 5, End: 6}},
			keyword:  "padded",
			window:   2,
			want:     []models.Match{{FoundAt: 5, ClipStart: 3, ClipEnd: 8, Text: "padded text"}},
		},
		{
			name:     "times rounded to two decimals",
			segments: []models.Segment{{Text: "precise", Start: 10.456, End: 12.789}},
			keyword:  "precise",
			window:   0,
			want:     []models.Match{{FoundAt: 10.46, ClipStart: 10.46, ClipEnd: 12.79, Text: "precise"}},
		},
		{
			name:     "clip end may exceed media duration",
			segments: []models.Segment{{Text: "tail", Start: 58.0, End: 60.0}},
			keyword:  "tail",
			window:   7,
			want:     []models.Match{{FoundAt: 58.0, ClipStart: 51.0, ClipEnd: 67.0, Text: "tail"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keyword(tt.segments, tt.keyword, tt.window)
			if got == nil {
				t.Fatal("Keyword() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keyword() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeywordIsPure(t *testing.T) {
	segments := []models.Segment{
		{Text: " Hello world ", Start: 10.123, End: 12.456},
		{Text: "nothing here", Start: 13, End: 14},
		{Text: "world again", Start: 20, End: 22},
	}
	input := make([]models.Segment, len(segments))
	copy(input, segments)

	first := Keyword(segments, "world", 7)
	second := Keyword(segments, "world", 7)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %#v vs %#v", first, second)
	}
	if !reflect.DeepEqual(segments, input) {
		t.Errorf("input segments mutated: %#v", segments)
	}
}

func TestKeywordWindowInvariants(t *testing.T) {
	segments := []models.Segment{
		{Text: "a", Start: 0.5, End: 1.0},
		{Text: "a", Start: 3.0, End: 3.5},
		{Text: "a", Start: 100.25, End: 130.75},
	}
	for _, window := range []float64{0, 0.5, 7, 42.42} {
		for _, m := range Keyword(segments, "a", window) {
			if m.ClipStart < 0 {
				t.Errorf("window %v: negative clip_start %v", window, m.ClipStart)
			}
			if m.ClipEnd < m.ClipStart {
				t.Errorf("window %v: clip_end %v before clip_start %v", window, m.ClipEnd, m.ClipStart)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{1.004, 1.0},
		{2.346, 2.35},
		{10.456, 10.46},
		{0, 0},
	} {
		if got := round2(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
