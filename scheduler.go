package main

import (
	"context"
	"math"
	"time"
)

// State is the lifecycle of one playback run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Sleeper suspends the playback worker between groups. Implementations may
// return early once ctx is done; the scheduler only acts on cancellation at
// the next group boundary.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

type wallClock struct{}

func (wallClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Scheduler replays event groups in order. Every event of a group is
// dispatched back to back, then the worker sleeps for the group's longest
// event. Cancellation is polled once per group, before dispatch.
type Scheduler struct {
	Sleeper  Sleeper
	Dispatch func(NoteEvent)
	// OnGroup, when set, is called after a group has been dispatched.
	OnGroup func(index int, g EventGroup)
}

// Run blocks until every group has played (StateCompleted) or ctx is
// cancelled (StateStopped).
func (s *Scheduler) Run(ctx context.Context, groups []EventGroup) State {
	sleeper := s.Sleeper
	if sleeper == nil {
		sleeper = wallClock{}
	}
	for i, g := range groups {
		if ctx.Err() != nil {
			logger.Info("scheduler: playback stopped", "group", i, "remaining", len(groups)-i)
			return StateStopped
		}
		longest := 0.0
		for _, ev := range g.Events {
			if s.Dispatch != nil {
				s.Dispatch(ev)
			}
			if ev.Duration > longest {
				longest = ev.Duration
			}
		}
		logger.Debug("scheduler: group dispatched", "group", i, "tick", g.StartTick, "events", len(g.Events), "hold_s", longest)
		if s.OnGroup != nil {
			s.OnGroup(i, g)
		}
		sleeper.Sleep(ctx, secondsToDuration(longest))
	}
	logger.Info("scheduler: playback completed", "groups", len(groups))
	return StateCompleted
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Round(sec * float64(time.Second)))
}
