package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bac-interop/interop-backend/internal/media/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const videoColumns = `id::text, video_id, title, published_at, url, created_at`

// VideoRepository reads videos_linkata
type VideoRepository struct {
	db Querier
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db Querier) *VideoRepository {
	return &VideoRepository{db: db}
}

// List returns a window of videos, newest first, plus the total row count
func (r *VideoRepository) List(ctx context.Context, limit, offset int) ([]domain.Video, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos_linkata`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos_linkata
		ORDER BY created_at DESC NULLS LAST, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, total, nil
}

// GetByID retrieves a video by its UUID
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	row := r.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos_linkata WHERE id = $1`, id.String())
	v, err := scanVideo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVideo(row pgx.Row) (domain.Video, error) {
	var (
		v  domain.Video
		id string
	)
	if err := row.Scan(&id, &v.VideoID, &v.Title, &v.PublishedAt, &v.URL, &v.CreatedAt); err != nil {
		return domain.Video{}, fmt.Errorf("failed to scan video: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Video{}, fmt.Errorf("invalid video id %q: %w", id, err)
	}
	v.ID = parsed
	return v, nil
}
