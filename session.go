package main

import (
	"context"
	"io"
)

// Result summarises one playback run.
type Result struct {
	Song       string  `json:"song"`
	State      State   `json:"-"`
	Outcome    string  `json:"outcome"`
	Err        error   `json:"-"`
	BPM        float64 `json:"bpm"`
	Groups     int     `json:"groups"`
	Dispatched int     `json:"dispatched"`
	Sent       int     `json:"sent"`
	Simulated  bool    `json:"simulated"`
}

func (r *Result) finish(s State, err error) Result {
	r.State = s
	r.Outcome = s.String()
	r.Err = err
	return *r
}

// Session wires the engine stages for one run: tempo, extraction, grouping,
// then the scheduler feeding the transmitter and the session log.
type Session struct {
	Out     io.Writer // optional; nil plays in simulation mode
	LogPath string
	Sleeper Sleeper
	// Progress, when set, is called after each group with groups done/total.
	Progress func(done, total int)
}

// Play loads the song at path and plays it. A load failure ends the session
// before anything is dispatched.
func (s *Session) Play(ctx context.Context, path string) Result {
	tl, err := LoadTimeline(path)
	if err != nil {
		logger.Error("session: load failed", "song", path, "err", err)
		res := Result{Song: path}
		return res.finish(StateFailed, err)
	}
	return s.PlayTimeline(ctx, path, tl)
}

// PlayTimeline plays an already parsed song.
func (s *Session) PlayTimeline(ctx context.Context, name string, tl *Timeline) Result {
	res := Result{Song: name}
	res.BPM = ResolveTempo(tl)
	groups := GroupEvents(ExtractEvents(tl, res.BPM))
	res.Groups = len(groups)

	rec, err := CreateSessionLog(s.LogPath)
	if err != nil {
		logger.Error("session: cannot open session log", "path", s.LogPath, "err", err)
		return res.finish(StateFailed, err)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warn("session: closing session log", "path", s.LogPath, "err", err)
		}
	}()

	tx := NewTransmitter(s.Out)
	sched := &Scheduler{
		Sleeper: s.Sleeper,
		Dispatch: func(ev NoteEvent) {
			tx.Send(ev)
			if err := rec.Append(ev); err != nil {
				logger.Warn("session: log append failed", "err", err)
			}
			res.Dispatched++
		},
		OnGroup: func(i int, _ EventGroup) {
			if err := rec.Flush(); err != nil {
				logger.Warn("session: log flush failed", "err", err)
			}
			if s.Progress != nil {
				s.Progress(i+1, len(groups))
			}
		},
	}

	logger.Info("session: playback starting", "song", name, "bpm", res.BPM, "groups", len(groups), "simulation", tx.Simulated())
	state := sched.Run(ctx, groups)
	res.Sent = tx.Sent()
	res.Simulated = tx.Simulated()
	logger.Info("session: playback ended", "song", name, "outcome", state.String(), "dispatched", res.Dispatched, "sent", res.Sent)
	return res.finish(state, nil)
}
