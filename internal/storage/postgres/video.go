// Package postgres implements the catalog repositories. The catalog is
// optional bookkeeping on top of the filesystem store; nothing in the media
// pipeline depends on it.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create records a newly ingested video. The id comes from the filesystem
// store so catalog rows and files always share identifiers.
func (r *VideoRepository) Create(ctx context.Context, id, source, originalName string) error {
	const query = `
		INSERT INTO videos (id, source, original_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	if _, err := r.db.ExecContext(ctx, query, id, source, originalName); err != nil {
		return fmt.Errorf("inserting video: %w", err)
	}
	return nil
}

// Get returns the catalog record for id. Missing rows surface as
// sql.ErrNoRows so callers can answer not-found precisely.
func (r *VideoRepository) Get(ctx context.Context, id string) (*models.Video, error) {
	const query = `
		SELECT id, source, original_name, status, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	var video models.Video
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID,
		&video.Source,
		&video.OriginalName,
		&video.Status,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List returns all catalog records, newest first.
func (r *VideoRepository) List(ctx context.Context) ([]models.Video, error) {
	const query = `
		SELECT id, source, original_name, status, created_at, updated_at
		FROM videos
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(
			&video.ID,
			&video.Source,
			&video.OriginalName,
			&video.Status,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning video row: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// UpdateStatus moves a video through pending, ready and failed.
func (r *VideoRepository) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `
		UPDATE videos
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating video status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating video status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no video found with ID: %s", id)
	}
	return nil
}
