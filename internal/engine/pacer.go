package engine

import (
	"context"
	"time"
)

// Clock abstracts time for pacing so loops can be tested deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Pacer spaces loop iterations at a fixed rate and measures the real time
// between them.
type Pacer struct {
	period time.Duration
	clock  Clock
	last   time.Time
	next   time.Time
}

// NewPacer creates a pacer running at rateHz using the wall clock.
func NewPacer(rateHz float64) *Pacer {
	return NewPacerWithClock(rateHz, realClock{})
}

// NewPacerWithClock creates a pacer using clock. Non-positive rates fall back
// to 60 Hz.
func NewPacerWithClock(rateHz float64, clock Clock) *Pacer {
	if rateHz <= 0 {
		rateHz = 60
	}
	return &Pacer{
		period: time.Duration(float64(time.Second) / rateHz),
		clock:  clock,
	}
}

// Period returns the target interval between iterations.
func (p *Pacer) Period() time.Duration {
	return p.period
}

// Wait sleeps until the next period boundary and returns the time elapsed
// since the previous call. The schedule starts at the first call, so the
// first delta is one period however long the pacer sat unused. A loop that
// falls behind by more than a period is resynchronized instead of bursting
// to catch up.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := p.clock.Now()
	if p.last.IsZero() {
		p.last = now
		p.next = now.Add(p.period)
	}
	if wait := p.next.Sub(now); wait > 0 {
		select {
		case <-p.clock.After(wait):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
		now = p.clock.Now()
	}

	p.next = p.next.Add(p.period)
	if p.next.Before(now) {
		p.next = now.Add(p.period)
	}
	delta := now.Sub(p.last)
	p.last = now
	return delta, nil
}
