package sim

import (
	"context"
	"time"
)

// Clock is the time source a Pacer sleeps on.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pacer holds a loop to a fixed frame rate against a running deadline, so
// time spent inside a frame is not added on top of the frame budget. A loop
// that falls more than one frame behind drops the backlog instead of
// running frames back to back.
type Pacer struct {
	budget time.Duration
	next   time.Time
	clock  Clock
}

// NewPacer returns a pacer for hz frames per second. A nil clock uses the
// system's monotonic clock.
func NewPacer(hz int, clock Clock) *Pacer {
	if hz <= 0 {
		hz = 60
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Pacer{budget: time.Second / time.Duration(hz), clock: clock}
}

// Budget is the time allotted to one frame.
func (p *Pacer) Budget() time.Duration {
	return p.budget
}

// Wait sleeps until the end of the current frame's budget.
func (p *Pacer) Wait(ctx context.Context) error {
	now := p.clock.Now()
	if p.next.IsZero() {
		p.next = now
	}
	p.next = p.next.Add(p.budget)

	d := p.next.Sub(now)
	if d > 0 {
		return p.clock.Sleep(ctx, d)
	}
	if -d > p.budget {
		p.next = now
	}
	return nil
}
