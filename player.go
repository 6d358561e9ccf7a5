package main

import (
	"context"
	"errors"
	"io"
	"sync"
)

var (
	// ErrBusy is returned when a session is already playing.
	ErrBusy = errors.New("player: playback already running")
	// ErrNoSession is returned by Stop and Wait when nothing was started.
	ErrNoSession = errors.New("player: no playback session")
)

// Status is a snapshot of the player for front ends.
type Status struct {
	Playing   bool    `json:"playing"`
	Song      string  `json:"song,omitempty"`
	Group     int     `json:"group"`
	Groups    int     `json:"groups"`
	Progress  float64 `json:"progress"`
	Simulated bool    `json:"simulated"`
	Last      *Result `json:"last,omitempty"`
}

// Player owns the output channel and runs at most one session at a time on
// its own goroutine, so callers (TUI, HTTP handlers) never block on playback.
type Player struct {
	out     io.Writer
	logPath string
	sleeper Sleeper

	mu      sync.Mutex
	running bool
	song    string
	group   int
	groups  int
	cancel  context.CancelFunc
	done    chan struct{}
	last    *Result
}

// NewPlayer returns a player writing to out; a nil out plays in simulation mode.
func NewPlayer(out io.Writer, logPath string) *Player {
	return &Player{out: out, logPath: logPath}
}

// Start begins playing path in the background. It fails with ErrBusy while
// another session is running.
func (p *Player) Start(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrBusy
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.running = true
	p.song = path
	p.group, p.groups = 0, 0
	p.cancel = cancel
	p.done = done

	sess := &Session{
		Out:      p.out,
		LogPath:  p.logPath,
		Sleeper:  p.sleeper,
		Progress: p.setProgress,
	}
	go func() {
		defer close(done)
		defer cancel()
		res := sess.Play(runCtx, path)

		p.mu.Lock()
		p.running = false
		p.last = &res
		p.mu.Unlock()
	}()
	logger.Info("player: session started", "song", path)
	return nil
}

func (p *Player) setProgress(done, total int) {
	p.mu.Lock()
	p.group, p.groups = done, total
	p.mu.Unlock()
}

// Stop requests cancellation of the running session. The session ends at the
// next group boundary.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return ErrNoSession
	}
	logger.Info("player: stop requested", "song", p.song)
	p.cancel()
	return nil
}

// Wait blocks until the most recent session ends and returns its result.
func (p *Player) Wait() (Result, error) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return Result{}, ErrNoSession
	}
	<-done

	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.last, nil
}

// Status returns a snapshot of the current or last session.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Status{
		Playing:   p.running,
		Song:      p.song,
		Group:     p.group,
		Groups:    p.groups,
		Simulated: p.out == nil,
	}
	if p.last != nil {
		last := *p.last
		st.Last = &last
	}
	if p.groups > 0 {
		st.Progress = float64(p.group) / float64(p.groups) * 100
	}
	return st
}
