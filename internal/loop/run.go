package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
)

// InputSource yields the intents for the next frame.
type InputSource interface {
	Poll() object.Input
}

// EventObserver reacts to the events of each step (sound effects, logging).
type EventObserver interface {
	Observe(events []Event)
}

// Pacer blocks until the next frame is due.
type Pacer interface {
	Wait()
}

// SleepPacer holds the loop at a fixed frame time by sleeping away
// whatever the frame did not use.
type SleepPacer struct {
	FrameTime  time.Duration
	frameStart time.Time
}

// NewSleepPacer returns a pacer for the default 60 FPS frame budget.
func NewSleepPacer() *SleepPacer {
	return &SleepPacer{FrameTime: config.TargetFrameTime, frameStart: time.Now()}
}

// Wait sleeps until one frame time has passed since the previous Wait returned.
func (p *SleepPacer) Wait() {
	elapsed := time.Since(p.frameStart)
	if elapsed < p.FrameTime {
		time.Sleep(p.FrameTime - elapsed)
	}
	p.frameStart = time.Now()
}

// Run drives the session with the standard Input → Update → Draw cycle until
// a quit intent arrives or ctx is cancelled.
func Run(ctx context.Context, s *Session, src InputSource, out Presenter, pacer Pacer, observers ...EventObserver) error {
	for !s.Quit() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT + UPDATE PHASE =====
		s.Step(src.Poll())
		if events := s.Events(); len(events) > 0 {
			for _, o := range observers {
				o.Observe(events)
			}
		}

		// ===== DRAW PHASE =====
		if err := out.Present(s.Frame()); err != nil {
			return fmt.Errorf("present frame %d: %w", s.FrameCount(), err)
		}

		// ===== FRAME TIMING =====
		pacer.Wait()
	}
	return nil
}
