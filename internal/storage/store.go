// Package storage owns the on-disk layout of the service: source videos,
// extracted audio, generated clips, and the JSON records that map asset ids
// back to their files.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no asset exists for a given id.
var ErrNotFound = errors.New("not found")

// Record maps a video id to its stored file and remembers where the video
// came from. Records are written as <videos>/<id>.json next to the video
// itself so the data directory stays self-describing.
type Record struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	OriginalName string    `json:"original_name,omitempty"`
	VideoPath    string    `json:"video_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store manages the data directory. All paths it hands out stay inside the
// root it was created with.
type Store struct {
	videoDir string
	tempDir  string
	clipsDir string
	audioDir string
}

// New returns a Store rooted at dir. Call EnsureDirs before using it.
func New(dir string) *Store {
	return &Store{
		videoDir: filepath.Join(dir, "videos"),
		tempDir:  filepath.Join(dir, "temp"),
		clipsDir: filepath.Join(dir, "clips"),
		audioDir: filepath.Join(dir, "audio"),
	}
}

// EnsureDirs creates the four asset directories. It is called once at
// startup so request handlers never race on directory creation.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.videoDir, s.tempDir, s.clipsDir, s.audioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// NewID returns a fresh asset id.
func (s *Store) NewID() string {
	return uuid.New().String()
}

// SaveUpload streams an uploaded video to <videos>/<id><ext>, keeping the
// original file extension. Files without an extension are stored as .mp4,
// and so are .json uploads: that suffix is reserved for the records living
// in the same directory.
func (s *Store) SaveUpload(id, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" || strings.EqualFold(ext, ".json") {
		ext = ".mp4"
	}
	path := filepath.Join(s.videoDir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating video file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing video file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing video file: %w", err)
	}
	return path, nil
}

// VideoTemplate returns the yt-dlp output template for id. The downloader
// substitutes the real extension for %(ext)s.
func (s *Store) VideoTemplate(id string) string {
	return filepath.Join(s.videoDir, id+".%(ext)s")
}

// WriteRecord persists the id-to-file record for a stored video.
func (s *Store) WriteRecord(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// ReadRecord loads the record for id, or ErrNotFound if none was written.
func (s *Store) ReadRecord(id string) (Record, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}

// FindVideo resolves id to the stored video file. The record is consulted
// first; if it is missing or stale the video directory is scanned for a file
// carrying the id as its name prefix, which also covers videos dropped into
// the directory by hand. Ids with characters the store never issues are
// rejected before any path is built, so request-supplied ids cannot reach
// outside the data directories. Returns ErrNotFound when no lookup yields a
// file.
func (s *Store) FindVideo(id string) (string, error) {
	if !validID(id) {
		return "", ErrNotFound
	}
	if rec, err := s.ReadRecord(id); err == nil {
		if _, err := os.Stat(rec.VideoPath); err == nil {
			return rec.VideoPath, nil
		}
	}

	entries, err := os.ReadDir(s.videoDir)
	if err != nil {
		return "", fmt.Errorf("scanning video dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, id) {
			continue
		}
		// Records share the directory; never resolve to one.
		if strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		return filepath.Join(s.videoDir, name), nil
	}
	return "", ErrNotFound
}

// TempAudioPath returns where the extracted audio track for a video lives.
func (s *Store) TempAudioPath(id string) string {
	return filepath.Join(s.tempDir, id+".wav")
}

// ClipVideoPath returns where the video clip with the given id lives.
func (s *Store) ClipVideoPath(clipID string) string {
	return filepath.Join(s.clipsDir, clipID+".mp4")
}

// ClipAudioPath returns where the audio clip with the given id lives.
func (s *Store) ClipAudioPath(clipID string) string {
	return filepath.Join(s.audioDir, clipID+".wav")
}

// RemoveVideoAssets deletes everything stored for a video id: the video
// file (whatever its extension), its record, and its extracted audio.
// Removal is best effort; it is used to clean up after failed ingestions.
func (s *Store) RemoveVideoAssets(id string) {
	if entries, err := os.ReadDir(s.videoDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasPrefix(entry.Name(), id) {
				os.Remove(filepath.Join(s.videoDir, entry.Name()))
			}
		}
	}
	os.Remove(s.TempAudioPath(id))
}

// RemoveClipAssets deletes the clip files for a clip id. Removal is best
// effort; it is used to clean up after failed cuts.
func (s *Store) RemoveClipAssets(clipID string) {
	os.Remove(s.ClipVideoPath(clipID))
	os.Remove(s.ClipAudioPath(clipID))
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.videoDir, id+".json")
}

// validID reports whether id could have been issued by NewID. Ids are joined
// into file paths, so anything outside the UUID alphabet must never reach a
// lookup.
func validID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
