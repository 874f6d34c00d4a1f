// Package probe periodically exercises both upstream systems so their status
// stays fresh even without traffic.
package probe

import (
	"context"
	"fmt"
	"log"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Target is the part of the catalog the probe calls.
type Target interface {
	ListUsers(ctx context.Context, page domain.Page) (domain.PageResult[domain.UserRecord], error)
	ListPublications(ctx context.Context, f domain.PublicationFilter, page domain.Page) (domain.PageResult[domain.PublicationRecord], error)
}

var probePage = domain.Page{Limit: 1, Offset: 0}

type Scheduler struct {
	target Target
	cron   *cron.Cron
}

func NewScheduler(target Target) *Scheduler {
	return &Scheduler{
		target: target,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start schedules the probe on a six-field cron spec. An empty spec leaves
// the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		log.Println("Upstream probe disabled (no schedule)")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("schedule upstream probe: %w", err)
	}

	log.Printf("Upstream probe scheduled (%s)", spec)
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running probe to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce calls each upstream once. Failures are logged; the call outcome
// itself is recorded by the upstream clients.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx = logging.WithRequestID(ctx, "probe-"+uuid.NewString())
	logger := logging.New(ctx)

	if _, err := s.target.ListUsers(ctx, probePage); err != nil {
		logger.LogErrorf("probe", "system=%s error=%v", domain.SystemUsers, err)
	}
	if _, err := s.target.ListPublications(ctx, domain.PublicationFilter{}, probePage); err != nil {
		logger.LogErrorf("probe", "system=%s error=%v", domain.SystemPublications, err)
	}
}
