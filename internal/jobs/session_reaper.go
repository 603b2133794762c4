// Package jobs implements background tasks that run independently of
// HTTP request handling.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExpiredSessionDeleter removes sessions past their expiry.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// SessionReaper periodically sweeps expired sessions. Expired sessions
// are already rejected at resolution time; the reaper just keeps the
// session collection from growing without bound.
type SessionReaper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSessionReaper creates a new session reaper.
func NewSessionReaper(sessions ExpiredSessionDeleter, interval time.Duration) *SessionReaper {
	return &SessionReaper{
		sessions: sessions,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (j *SessionReaper) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	slog.Info("session reaper started", slog.Duration("interval", j.interval))
}

// Stop gracefully stops the job.
func (j *SessionReaper) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	slog.Info("session reaper stopped")
}

func (j *SessionReaper) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

func (j *SessionReaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.Error("session sweep failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		slog.Info("expired sessions removed", slog.Int("count", deleted))
	}
}
