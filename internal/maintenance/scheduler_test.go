package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
}

func (f *fakePurger) PurgeDeleted(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.n, f.err
}

func (f *fakePurger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestRunOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	purger := &fakePurger{n: 3}
	s := NewScheduler(purger, "0 0 3 * * *", 48*time.Hour, zap.New(core))
	now := time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, purger.cutoffs, 1)
	assert.Equal(t, now.Add(-48*time.Hour), purger.cutoffs[0])
	assert.Equal(t, 1, logs.FilterMessage("Purge completed").Len())
}

func TestRunOnce_Error(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewScheduler(&fakePurger{err: errors.New("db gone")}, "0 0 3 * * *", time.Hour, zap.New(core))

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Purge failed").Len())
}

func TestStart_BadSchedule(t *testing.T) {
	s := NewScheduler(&fakePurger{}, "not a schedule", time.Hour, nil)
	assert.Error(t, s.Start())
}

func TestStart_RunsJob(t *testing.T) {
	purger := &fakePurger{}
	s := NewScheduler(purger, "* * * * * *", time.Hour, nil)
	require.NoError(t, s.Start())
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return purger.calls() > 0 }, 3*time.Second, 50*time.Millisecond)
}
