package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingDeleter struct {
	calls atomic.Int32
}

func (c *countingDeleter) DeleteExpired(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 1, nil
}

func TestSessionReaper_SweepsOnInterval(t *testing.T) {
	deleter := &countingDeleter{}
	reaper := NewSessionReaper(deleter, 10*time.Millisecond)

	reaper.Start()
	time.Sleep(60 * time.Millisecond)
	reaper.Stop()

	if deleter.calls.Load() == 0 {
		t.Error("expected at least one sweep")
	}
}

func TestSessionReaper_StartStopIdempotent(t *testing.T) {
	reaper := NewSessionReaper(&countingDeleter{}, time.Hour)

	reaper.Start()
	reaper.Start()
	reaper.Stop()
	reaper.Stop()
}
