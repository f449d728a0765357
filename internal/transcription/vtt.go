package transcription

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// ParseVTT parses a WebVTT document into transcript segments with times in
// seconds. The first line must be the WEBVTT signature, either alone or
// separated from a trailing label by whitespace. Cue identifiers before the
// timestamp line are tolerated, as are cue settings after the end timestamp
// and a missing blank line after the header; multi-line cue text is joined
// with spaces. A document with no parseable cues yields zero segments, not
// an error.
func ParseVTT(content string) ([]models.Segment, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	header, rest, _ := strings.Cut(content, "\n")
	if !validVTTHeader(header) {
		return nil, fmt.Errorf("invalid VTT format: missing WEBVTT header")
	}

	segments := []models.Segment{}

	// Header metadata lines carry no arrow, so the cue scan passes over them.
	for _, block := range strings.Split(rest, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")

		cueLine := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				cueLine = i
				break
			}
		}
		if cueLine == -1 || cueLine == len(lines)-1 {
			continue
		}

		timestamps := strings.SplitN(lines[cueLine], "-->", 2)
		start, err := parseVTTTimestamp(strings.TrimSpace(timestamps[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp: %w", err)
		}

		// The end timestamp may be followed by cue settings.
		endFields := strings.Fields(strings.TrimSpace(timestamps[1]))
		if len(endFields) == 0 {
			continue
		}
		end, err := parseVTTTimestamp(endFields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp: %w", err)
		}

		text := strings.TrimSpace(strings.Join(lines[cueLine+1:], " "))
		if text == "" {
			continue
		}

		segments = append(segments, models.Segment{
			Text:  text,
			Start: start.Seconds(),
			End:   end.Seconds(),
		})
	}

	return segments, nil
}

// validVTTHeader reports whether line opens a WebVTT document: the bare
// WEBVTT signature, or the signature set off from a label by a space or tab.
// Anything glued onto the signature is some other format.
func validVTTHeader(line string) bool {
	if line == "WEBVTT" {
		return true
	}
	return strings.HasPrefix(line, "WEBVTT ") || strings.HasPrefix(line, "WEBVTT\t")
}

// parseVTTTimestamp accepts HH:MM:SS.mmm and MM:SS.mmm forms.
func parseVTTTimestamp(timestamp string) (time.Duration, error) {
	if !strings.Contains(timestamp, ".") {
		return 0, fmt.Errorf("invalid timestamp %q: missing milliseconds", timestamp)
	}

	parts := strings.Split(timestamp, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q: expected HH:MM:SS.mmm or MM:SS.mmm", timestamp)
	}

	hours := 0
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", timestamp, err)
		}
		hours = h
		parts = parts[1:]
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", timestamp, err)
	}

	secondParts := strings.Split(parts[1], ".")
	if len(secondParts) != 2 {
		return 0, fmt.Errorf("invalid seconds in %q: missing milliseconds", timestamp)
	}

	seconds, err := strconv.Atoi(secondParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", timestamp, err)
	}

	milliseconds, err := strconv.Atoi(secondParts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds in %q: %w", timestamp, err)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(milliseconds)*time.Millisecond, nil
}
