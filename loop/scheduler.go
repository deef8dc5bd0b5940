// Package loop drives an engine session from a frame clock: queued player
// inputs, gravity and round bookkeeping run as ordered systems once per frame.
package loop

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/plus3/tetrodeck/engine"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler owns a session and executes systems against it in order.
// Queue, Do, Snapshot and GetStats are safe to call from other goroutines
// while Run is active.
type Scheduler struct {
	mu          sync.Mutex
	session     *engine.Session
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64

	inputMu sync.Mutex
	inputs  []Input
}

// NewScheduler creates a new scheduler for the given session.
func NewScheduler(session *engine.Session) *Scheduler {
	return &Scheduler{
		session: session,
		systems: make([]System, 0),
	}
}

// NewGameScheduler registers the standard systems: inputs, gravity, then
// round tracking.
func NewGameScheduler(session *engine.Session, rounds *RoundSystem) *Scheduler {
	s := NewScheduler(session)
	s.Register(&CommandSystem{})
	s.Register(&GravitySystem{})
	if rounds != nil {
		s.Register(rounds)
	}
	return s
}

// Register adds a system to the end of the frame.
func (s *Scheduler) Register(system System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Queue adds a player input for the next frame.
func (s *Scheduler) Queue(in Input) {
	s.inputMu.Lock()
	s.inputs = append(s.inputs, in)
	s.inputMu.Unlock()
}

func (s *Scheduler) drainInputs() []Input {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	in := s.inputs
	s.inputs = nil
	return in
}

// Once executes all registered systems once with the given delta time in
// seconds.
func (s *Scheduler) Once(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := newUpdateFrame(dt, s.drainInputs(), s)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
	s.frames++

	frame.Commands.Flush(s.session)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Do runs fn with exclusive access to the session, between frames.
func (s *Scheduler) Do(fn func(*engine.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.session)
}

// Snapshot copies the session state between frames.
func (s *Scheduler) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectStats()
}

func (s *Scheduler) collectStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
