package domain

import (
	"strings"
	"time"
)

// UserRecord is one entry of the users list.
type UserRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      *string `json:"status"`
	ProfileLink *string `json:"profile_link"`
}

// UserDetail is the full view of a single user.
type UserDetail struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Status           *string `json:"status"`
	ProfileLink      *string `json:"profile_link"`
	BirthDate        *string `json:"birth_date"`
	PreferredEmail   *string `json:"preferred_email"`
	PreferredPhone   *string `json:"preferred_phone"`
	PreferredAddress *string `json:"preferred_address"`
	Notes            *string `json:"notes"`
}

// PublicationRecord is one entry of the publications list.
type PublicationRecord struct {
	ID            *string  `json:"id"`
	Title         *string  `json:"title"`
	Authors       []string `json:"authors"`
	Type          *string  `json:"type"`
	Year          *string  `json:"year"`
	Region        *string  `json:"region"`
	SystemLabel   *string  `json:"system_label"`
	Crop          *string  `json:"crop"`
	Institution   *string  `json:"institution"`
	Country       *string  `json:"country"`
	ResourceLink  *string  `json:"resource_link"`
	ThumbnailLink *string  `json:"thumbnail_link"`
}

// PublicationDetail is the full view of a single publication. ID is the
// identifier the caller asked for, with any system prefix removed.
type PublicationDetail struct {
	ID            string   `json:"id"`
	Title         *string  `json:"title"`
	Authors       []string `json:"authors"`
	Type          *string  `json:"type"`
	Year          *string  `json:"year"`
	Region        *string  `json:"region"`
	SystemLabel   *string  `json:"system_label"`
	Crop          *string  `json:"crop"`
	Institution   *string  `json:"institution"`
	Country       *string  `json:"country"`
	Description   *string  `json:"description"`
	ResourceLink  *string  `json:"resource_link"`
	ThumbnailLink *string  `json:"thumbnail_link"`
}

// PageResult holds one page of items and the total reported by the upstream
// system. Total is counted before client-side filtering and deduplication, so
// it may exceed len(Items).
type PageResult[T any] struct {
	Items []T
	Total int
}

// PublicationFilter carries the optional list filters. Empty fields are unset.
type PublicationFilter struct {
	Region string
	System string
	Crop   string
	Type   string
}

// Trimmed returns f with surrounding whitespace removed from every field,
// so a blank value counts as unset.
func (f PublicationFilter) Trimmed() PublicationFilter {
	return PublicationFilter{
		Region: strings.TrimSpace(f.Region),
		System: strings.TrimSpace(f.System),
		Crop:   strings.TrimSpace(f.Crop),
		Type:   strings.TrimSpace(f.Type),
	}
}

// IsEmpty reports whether no filter was supplied. Blank values are unset.
func (f PublicationFilter) IsEmpty() bool {
	t := f.Trimmed()
	return t.Region == "" && t.System == "" && t.Crop == "" && t.Type == ""
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// CallOutcome describes one finished upstream round-trip.
type CallOutcome struct {
	System     string
	OK         bool
	StatusCode int
	Latency    time.Duration
	Error      string
	At         time.Time
}
