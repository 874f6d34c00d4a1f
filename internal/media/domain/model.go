package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrVideoNotFound = errors.New("video not found")

// Video is a row of videos_linkata
type Video struct {
	ID          uuid.UUID  `json:"id"`
	VideoID     string     `json:"video_id"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at"`
	URL         string     `json:"url"`
	CreatedAt   *time.Time `json:"created_at"`
}
