package replay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/internal/alert"
	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
)

// Engine is what a replay drives: the plugin receives the scripted entity
// events and Frame renders once per scripted frame.
type Engine interface {
	Plugin() *alert.Plugin
	Frame() alert.Frame
}

// Summary describes a finished replay.
type Summary struct {
	Frames int

	// Drawn is the number of alerts in the last frame and Peak the most in
	// any frame.
	Drawn int
	Peak  int

	Tracked int
	Sounds  int
	Icons   int
}

// RunOption configures [Run].
type RunOption func(*runner)

type runner struct {
	interval time.Duration
	onFrame  func(n int, f alert.Frame)
}

// WithFrameInterval paces frames at d instead of as fast as possible.
func WithFrameInterval(d time.Duration) RunOption {
	return func(r *runner) { r.interval = d }
}

// WithFrameHook calls fn after each rendered frame.
func WithFrameHook(fn func(n int, f alert.Frame)) RunOption {
	return func(r *runner) { r.onFrame = fn }
}

// Run plays s against eng using w as the host world. w must be the world
// eng was built on. Run stops early when ctx is cancelled and returns the
// context's error with the summary so far.
func Run(ctx context.Context, s *Scene, w *World, eng Engine, opts ...RunOption) (Summary, error) {
	r := &runner{}
	for _, o := range opts {
		o(r)
	}

	ctx, span := observe.StartSpan(ctx, "replay.run")
	defer span.End()
	log := observe.Logger(ctx)

	var tick <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		tick = t.C
	}

	var sum Summary
	events := s.Events
	frames := s.FrameCount()
	log.Info("replay: starting", "scene", s.Name, "frames", frames, "events", len(events))

	for n := range frames {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		for len(events) > 0 && events[0].Frame == n {
			if err := apply(w, eng.Plugin(), events[0]); err != nil {
				span.RecordError(err)
				return sum, fmt.Errorf("replay: frame %d: %w", n, err)
			}
			events = events[1:]
		}

		f := eng.Frame()
		sum.Frames++
		sum.Drawn = len(f.Boxes)
		sum.Peak = max(sum.Peak, sum.Drawn)
		if r.onFrame != nil {
			r.onFrame(n, f)
		}
		log.Debug("replay: frame", "n", n, "alerts", sum.Drawn, "height", f.Size.Height)

		if tick != nil {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-tick:
			}
		}
	}

	sum.Tracked = eng.Plugin().Tracker().Len()
	sum.Sounds = w.Sounds()
	sum.Icons = w.Icons()
	log.Info("replay: finished", "frames", sum.Frames, "peak", sum.Peak, "sounds", sum.Sounds)
	return sum, nil
}

// apply performs one event's actions in field order.
func apply(w *World, p *alert.Plugin, ev Event) error {
	if ev.Area != "" {
		for _, e := range w.EnterArea(ev.Area) {
			p.OnEntityRemoved(e)
		}
	}
	if ev.Player != nil {
		w.MovePlayer(*ev.Player)
	}
	for _, id := range ev.Add {
		e, err := w.Spawn(id)
		if err != nil {
			return err
		}
		p.OnEntityAdded(e)
	}
	for _, id := range ev.Remove {
		e, err := w.Despawn(id)
		if err != nil {
			return err
		}
		p.OnEntityRemoved(e)
	}
	for _, id := range ev.Unreadable {
		w.SetReadable(id, false)
	}
	for _, id := range ev.Readable {
		w.SetReadable(id, true)
	}
	if ev.Panels != nil {
		w.SetPanels(*ev.Panels)
	}
	slog.Debug("replay: event applied", "frame", ev.Frame, "add", len(ev.Add), "remove", len(ev.Remove))
	return nil
}
