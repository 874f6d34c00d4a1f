// Package status keeps the outcome of the latest call to each upstream
// system in Redis so the health endpoint can report it.
package status

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "bac:upstream:" // hash per system: bac:upstream:{system}
	statusTTL    = 24 * time.Hour
	writeTimeout = 2 * time.Second
)

// Systems lists the upstream systems reported by Snapshot.
var Systems = []string{domain.SystemUsers, domain.SystemPublications}

// Status is the stored outcome of the latest call to one system
type Status struct {
	System     string    `json:"system"`
	OK         bool      `json:"ok"`
	StatusCode int       `json:"status_code"`
	LatencyMs  int64     `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
	Error      string    `json:"error,omitempty"`
}

// Store handles Redis operations for upstream status
type Store struct {
	client *redis.Client
}

// NewStore creates a new Store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Record saves the outcome and logs instead of failing; status tracking
// must never break a catalog request.
func (s *Store) Record(ctx context.Context, outcome domain.CallOutcome) {
	if s == nil || s.client == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.Save(wctx, outcome); err != nil {
		logging.New(ctx).LogWarnf("record_upstream_status", "system=%s error=%v", outcome.System, err)
	}
}

// Save writes the outcome for its system
func (s *Store) Save(ctx context.Context, outcome domain.CallOutcome) error {
	at := outcome.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	key := keyPrefix + outcome.System
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"ok":          strconv.FormatBool(outcome.OK),
		"status_code": outcome.StatusCode,
		"latency_ms":  outcome.Latency.Milliseconds(),
		"checked_at":  at.Format(time.RFC3339Nano),
		"error":       outcome.Error,
	})
	pipe.Expire(ctx, key, statusTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save upstream status: %w", err)
	}
	return nil
}

// Get returns the stored status of one system, or nil if none is recorded
func (s *Store) Get(ctx context.Context, system string) (*Status, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+system).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get upstream status: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	st := &Status{System: system, Error: fields["error"]}
	st.OK, _ = strconv.ParseBool(fields["ok"])
	st.StatusCode, _ = strconv.Atoi(fields["status_code"])
	st.LatencyMs, _ = strconv.ParseInt(fields["latency_ms"], 10, 64)
	if t, err := time.Parse(time.RFC3339Nano, fields["checked_at"]); err == nil {
		st.CheckedAt = t
	}
	return st, nil
}

// Snapshot returns the recorded status of every known system
func (s *Store) Snapshot(ctx context.Context) (map[string]*Status, error) {
	out := make(map[string]*Status, len(Systems))
	for _, system := range Systems {
		st, err := s.Get(ctx, system)
		if err != nil {
			return nil, err
		}
		if st != nil {
			out[system] = st
		}
	}
	return out, nil
}
