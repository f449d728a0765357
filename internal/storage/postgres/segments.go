package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

type SegmentRepository struct {
	db *sql.DB
}

func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// SaveSegments stores transcript segments for a video. vectors pairs with
// segments by index and may be nil, or hold nil entries, when no embedding
// client is configured; such segments are stored without vectors and are
// invisible to semantic search.
func (r *SegmentRepository) SaveSegments(ctx context.Context, videoID string, segments []models.Segment, vectors [][]float32) error {
	stmt, err := r.db.PrepareContext(ctx, `
        INSERT INTO video_segments (video_id, segment_text, start_seconds, end_seconds, embedding)
        VALUES ($1, $2, $3, $4, $5)
    `)
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	for i, seg := range segments {
		var embedding any
		if i < len(vectors) && vectors[i] != nil {
			embedding = pgvector.NewVector(vectors[i])
		}

		if _, err := stmt.ExecContext(ctx, videoID, seg.Text, seg.Start, seg.End, embedding); err != nil {
			return fmt.Errorf("segment insert failed: %w", err)
		}
	}
	return nil
}

// SemanticSearch returns the limit segments nearest to the query vector by
// cosine distance, most similar first. Only segments of ready videos with a
// stored embedding participate.
func (r *SegmentRepository) SemanticSearch(ctx context.Context, query []float32, limit int) ([]models.SemanticMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT s.video_id, s.segment_text, s.start_seconds, s.end_seconds,
               1 - (s.embedding <=> $1) AS similarity
        FROM video_segments s
        JOIN videos v ON v.id = s.video_id
        WHERE v.status = 'ready' AND s.embedding IS NOT NULL
        ORDER BY s.embedding <=> $1
        LIMIT $2
    `, pgvector.NewVector(query), limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search query failed: %w", err)
	}
	defer rows.Close()

	results := make([]models.SemanticMatch, 0)
	for rows.Next() {
		var match models.SemanticMatch
		if err := rows.Scan(
			&match.VideoID,
			&match.Text,
			&match.Start,
			&match.End,
			&match.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		results = append(results, match)
	}
	return results, rows.Err()
}
