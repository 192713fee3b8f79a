package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaccounting "github.com/tatweer/accounting/internal/application/accounting"
)

type fakeApprovalRunner struct {
	mu    sync.Mutex
	calls int
	stats *appaccounting.ApprovalStats
	err   error
}

func (f *fakeApprovalRunner) ApproveDraftEntries(ctx context.Context) (*appaccounting.ApprovalStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeApprovalRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestScheduler(runner ApprovalRunner, cfg DepreciationSchedulerConfig) *DepreciationScheduler {
	return NewDepreciationScheduler(runner, zap.NewNop(), cfg)
}

func TestDefaultDepreciationSchedulerConfig(t *testing.T) {
	cfg := DefaultDepreciationSchedulerConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, time.Hour, cfg.Interval)
	assert.Equal(t, 10*time.Minute, cfg.RunTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestDepreciationSchedulerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DepreciationSchedulerConfig
		wantErr bool
	}{
		{"valid", DepreciationSchedulerConfig{Interval: time.Hour, RunTimeout: time.Minute}, false},
		{"interval too short", DepreciationSchedulerConfig{Interval: time.Second, RunTimeout: time.Millisecond}, true},
		{"timeout exceeds interval", DepreciationSchedulerConfig{Interval: time.Hour, RunTimeout: 2 * time.Hour}, true},
		{"zero timeout", DepreciationSchedulerConfig{Interval: time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDepreciationScheduler_StartStop(t *testing.T) {
	t.Run("start and stop", func(t *testing.T) {
		runner := &fakeApprovalRunner{stats: &appaccounting.ApprovalStats{}}
		s := newTestScheduler(runner, DefaultDepreciationSchedulerConfig())

		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())

		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, s.Stop(stopCtx))
		assert.False(t, s.IsRunning())
	})

	t.Run("disabled scheduler does not start", func(t *testing.T) {
		cfg := DefaultDepreciationSchedulerConfig()
		cfg.Enabled = false
		s := newTestScheduler(&fakeApprovalRunner{}, cfg)

		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("invalid config rejected on start", func(t *testing.T) {
		cfg := DepreciationSchedulerConfig{Enabled: true, Interval: time.Second, RunTimeout: time.Second}
		s := newTestScheduler(&fakeApprovalRunner{}, cfg)

		assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidConfig)
		assert.False(t, s.IsRunning())
	})

	t.Run("double start is a no-op", func(t *testing.T) {
		runner := &fakeApprovalRunner{stats: &appaccounting.ApprovalStats{}}
		s := newTestScheduler(runner, DefaultDepreciationSchedulerConfig())

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Start(context.Background()))

		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, s.Stop(stopCtx))
	})

	t.Run("stop when not running is a no-op", func(t *testing.T) {
		s := newTestScheduler(&fakeApprovalRunner{}, DefaultDepreciationSchedulerConfig())
		assert.NoError(t, s.Stop(context.Background()))
	})
}

func TestDepreciationScheduler_TriggerNow(t *testing.T) {
	t.Run("runs the approval pass", func(t *testing.T) {
		runner := &fakeApprovalRunner{stats: &appaccounting.ApprovalStats{TotalDrafts: 3, Submitted: 3}}
		s := newTestScheduler(runner, DefaultDepreciationSchedulerConfig())

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.TriggerNow(context.Background()))

		assert.Eventually(t, func() bool {
			return runner.callCount() == 1
		}, time.Second, 10*time.Millisecond)

		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, s.Stop(stopCtx))
	})

	t.Run("rejected when stopped", func(t *testing.T) {
		s := newTestScheduler(&fakeApprovalRunner{}, DefaultDepreciationSchedulerConfig())
		assert.ErrorIs(t, s.TriggerNow(context.Background()), ErrSchedulerNotRunning)
	})

	t.Run("runner failure does not stop the scheduler", func(t *testing.T) {
		runner := &fakeApprovalRunner{err: context.DeadlineExceeded}
		s := newTestScheduler(runner, DefaultDepreciationSchedulerConfig())

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.TriggerNow(context.Background()))

		assert.Eventually(t, func() bool {
			return runner.callCount() == 1
		}, time.Second, 10*time.Millisecond)
		assert.True(t, s.IsRunning())

		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, s.Stop(stopCtx))
	})
}
