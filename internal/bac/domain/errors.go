package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamUnavailable = errors.New("upstream system unavailable")
	ErrUpstreamMalformed   = errors.New("upstream response malformed")
	ErrNotFound            = errors.New("record not found")
)

// Upstream system names used in errors, logs and status keys.
const (
	SystemUsers        = "users"
	SystemPublications = "publications"
)

// UpstreamError is returned when an upstream call fails at the transport
// level or answers with a non-2xx status. StatusCode is 0 for network errors.
type UpstreamError struct {
	System     string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s upstream request failed: %v", e.System, e.Err)
	}
	return fmt.Sprintf("%s upstream returned status %d: %s", e.System, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstreamUnavailable, e.Err}
	}
	return []error{ErrUpstreamUnavailable}
}

// MalformedError reports an upstream body that could not be decoded or lacks
// the expected top-level key.
type MalformedError struct {
	System string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s upstream response malformed: %s", e.System, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrUpstreamMalformed }

// ErrInvalidPage is returned for a window outside limit 1..MaxLimit or a
// negative offset.
var ErrInvalidPage = errors.New("invalid page window")

// MaxLimit caps the page size of every list operation.
const MaxLimit = 200

// Validate checks the window bounds.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidPage, MaxLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0", ErrInvalidPage)
	}
	return nil
}
