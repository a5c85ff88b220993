package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron"
	"go.uber.org/zap"

	"traveldeal/internal/config"
	"traveldeal/internal/services"
	"traveldeal/pkg/utils"
)

// JobScheduler triggers the itinerary job on a six-field cron expression (seconds first).
type JobScheduler struct {
	itineraries services.ItineraryServiceInterface
	cfg         config.ScheduleConfig
	logger      *zap.Logger

	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func NewJobScheduler(itineraries services.ItineraryServiceInterface, cfg *config.Config, logger *zap.Logger) *JobScheduler {
	return &JobScheduler{
		itineraries: itineraries,
		cfg:         cfg.Schedule,
		logger:      logger,
	}
}

func (s *JobScheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("itinerary schedule disabled")
		return nil
	}

	s.ctx, s.stop = context.WithCancel(context.Background())
	s.cron = cron.New()
	if err := s.cron.AddFunc(s.cfg.Cron, s.trigger); err != nil {
		s.stop()
		return fmt.Errorf("%w: schedule.cron %q: %v", utils.ErrInvalidConfig, s.cfg.Cron, err)
	}
	s.cron.Start()
	s.logger.Info("itinerary schedule started", zap.String("cron", s.cfg.Cron))

	if s.cfg.RunOnStart && s.begin() {
		go func() {
			defer s.wg.Done()
			s.run(s.ctx)
		}()
	}
	return nil
}

// Stop halts the schedule and cancels a run in flight.
func (s *JobScheduler) Stop() {
	if s.cron == nil {
		return
	}
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cron.Stop()
	s.stop()
	s.wg.Wait()
}

// begin registers a run with the wait group unless Stop has been called.
func (s *JobScheduler) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *JobScheduler) trigger() {
	if !s.begin() {
		return
	}
	defer s.wg.Done()
	s.run(s.ctx)
}

func (s *JobScheduler) run(ctx context.Context) {
	summary, err := s.itineraries.RunItineraryJob(ctx)
	switch {
	case errors.Is(err, utils.ErrJobAlreadyRunning):
		s.logger.Info("scheduled run skipped, previous run still active")
	case err != nil:
		s.logger.Error("scheduled itinerary run failed", zap.Error(err))
	default:
		s.logger.Info("scheduled itinerary run done",
			zap.Int("inserted", summary.Inserted),
			zap.Int("skipped", summary.Skipped))
	}
}
