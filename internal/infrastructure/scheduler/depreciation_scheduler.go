package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appaccounting "github.com/tatweer/accounting/internal/application/accounting"
)

// ApprovalRunner runs one draft approval pass
type ApprovalRunner interface {
	ApproveDraftEntries(ctx context.Context) (*appaccounting.ApprovalStats, error)
}

// DepreciationScheduler runs the depreciation draft approval task on a
// fixed interval. One run at a time; a manual trigger while a scheduled
// run is active simply queues behind it on the wait group.
type DepreciationScheduler struct {
	service   ApprovalRunner
	logger    *zap.Logger
	config    DepreciationSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// DepreciationSchedulerConfig holds configuration for the approval scheduler
type DepreciationSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is the time between approval runs
	Interval time.Duration

	// RunTimeout is the maximum duration of a single run
	RunTimeout time.Duration
}

// DefaultDepreciationSchedulerConfig returns default configuration
func DefaultDepreciationSchedulerConfig() DepreciationSchedulerConfig {
	return DepreciationSchedulerConfig{
		Enabled:    true,
		Interval:   time.Hour,
		RunTimeout: 10 * time.Minute,
	}
}

// Validate checks the configuration for usable values
func (c DepreciationSchedulerConfig) Validate() error {
	if c.Interval < time.Minute {
		return ErrInvalidConfig
	}
	if c.RunTimeout <= 0 || c.RunTimeout >= c.Interval {
		return ErrInvalidConfig
	}
	return nil
}

// NewDepreciationScheduler creates a new approval scheduler
func NewDepreciationScheduler(
	service ApprovalRunner,
	logger *zap.Logger,
	config DepreciationSchedulerConfig,
) *DepreciationScheduler {
	return &DepreciationScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start begins the interval loop. Starting an already-running or
// disabled scheduler is a no-op.
func (s *DepreciationScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Depreciation approval scheduler is disabled")
		return nil
	}
	if err := s.config.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Depreciation approval scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("run_timeout", s.config.RunTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight run
// until the given context expires.
func (s *DepreciationScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Depreciation approval scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Depreciation approval scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *DepreciationScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Approval loop stopping")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

// execute performs a single approval pass with the configured timeout
func (s *DepreciationScheduler) execute(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	startTime := time.Now()
	stats, err := s.service.ApproveDraftEntries(runCtx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Depreciation approval run failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Depreciation approval run completed",
		zap.Duration("duration", duration),
		zap.Int("total_drafts", stats.TotalDrafts),
		zap.Int("submitted", stats.Submitted),
		zap.Int("failed", stats.Failed),
	)
}

// TriggerNow runs an approval pass immediately without waiting for the
// next tick
func (s *DepreciationScheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate depreciation approval run")

	go func() {
		defer s.wg.Done()
		s.execute(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *DepreciationScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
