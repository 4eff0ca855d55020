// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/logutil"
)

// EventArchiver periodically flags past events as archived so listings and
// search only show upcoming ones.
type EventArchiver struct {
	events   *events.Repository
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	logger     zerolog.Logger
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewEventArchiver(repo *events.Repository, schedule string) *EventArchiver {
	return &EventArchiver{
		events:   repo,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		logger:   log.Logger,
	}
}

// Start begins the scheduler.
func (s *EventArchiver) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runArchive)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID
	s.logger = logutil.GetOrDefault(ctx)

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info().Str("schedule", s.schedule).Msg("event archiver started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *EventArchiver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	s.logger.Info().Msg("event archiver stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *EventArchiver) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow triggers an immediate archival pass.
func (s *EventArchiver) RunNow() {
	s.runArchive()
}

func (s *EventArchiver) runArchive() {
	s.mu.RLock()
	logger := s.logger
	s.mu.RUnlock()

	archived, err := s.events.ArchivePast(time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("event archival failed")
		return
	}
	if archived > 0 {
		logger.Info().Int64("count", archived).Msg("archived past events")
	}
}
