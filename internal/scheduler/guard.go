package scheduler

import (
	"sync"
	"time"
)

// runGuard impede execuções simultâneas do mesmo job e guarda os horários da última execução
type runGuard struct {
	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
}

func (g *runGuard) tryStart(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return false
	}
	g.running = true
	g.lastStartedAt = now
	return true
}

func (g *runGuard) finish(now time.Time, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.running = false
	g.lastCompletedAt = now
	g.lastError = ""
	if err != nil {
		g.lastError = err.Error()
	}
}

func (g *runGuard) status() map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()

	return map[string]any{
		"running":           g.running,
		"last_started_at":   g.lastStartedAt,
		"last_completed_at": g.lastCompletedAt,
		"last_error":        g.lastError,
	}
}
