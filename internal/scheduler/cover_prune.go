// Package scheduler runs periodic catalog maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// Enqueuer hands tasks to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// CoverPruneScheduler periodically queues a PruneCoversTask.
type CoverPruneScheduler struct {
	queue    Enqueuer
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewCoverPruneScheduler creates a scheduler; an empty schedule disables it.
func NewCoverPruneScheduler(queue Enqueuer, schedule string) *CoverPruneScheduler {
	return &CoverPruneScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler. It stops by itself when ctx is cancelled.
func (s *CoverPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Info().Msg("cover prune scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cover pruning: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRun(s.schedule, time.Now())
	log.Info().
		Str("schedule", s.schedule).
		Str("description", Describe(s.schedule)).
		Time("next_run", next).
		Msg("cover prune scheduler: started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *CoverPruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Info().Msg("cover prune scheduler: stopped")
}

// RunNow queues a prune immediately.
func (s *CoverPruneScheduler) RunNow(ctx context.Context) error {
	_, err := s.queue.Enqueue(ctx, tasks.PruneCoversTask{})
	return err
}

// IsRunning returns whether the scheduler is active
func (s *CoverPruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next prune will be queued, or nil when stopped.
func (s *CoverPruneScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CoverPruneScheduler) enqueue(ctx context.Context) {
	if err := s.RunNow(ctx); err != nil {
		log.Error().Err(err).Msg("cover prune scheduler: failed to queue prune")
	}
}
