package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/config"
	"github.com/schoolcore/admin-service/internal/service"
)

const sweepTimeout = 4 * time.Minute

// Scheduler runs the end-of-day absence sweep on a cron schedule in the
// school's local timezone.
type Scheduler struct {
	cron              *cron.Cron
	attendanceService service.AttendanceService
	logger            zerolog.Logger
}

func New(cfg config.SchedulerConfig, attendanceService service.AttendanceService, logger zerolog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduler timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		attendanceService: attendanceService,
		logger:            logger,
	}

	if _, err := s.cron.AddFunc(cfg.Spec, s.runSweep); err != nil {
		return nil, fmt.Errorf("failed to register absence sweep job: %w", err)
	}

	logger.Info().Str("spec", cfg.Spec).Str("timezone", cfg.Timezone).Msg("Absence sweep scheduled")
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to complete.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	summary, err := s.attendanceService.SweepAbsences(ctx, "")
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled absence sweep failed")
		return
	}

	s.logger.Info().
		Str("date", summary.Date).
		Int("marked", summary.Marked).
		Int("skipped", summary.Skipped).
		Msg("Scheduled absence sweep completed")
}
