// Package pacer spaces out request dispatches around one shared deadline.
//
// Every Wait pushes the deadline forward by a fixed cushion, so any number of
// concurrent callers converge on a single release schedule with at least one
// cushion between them. Cooldown pushes the deadline further when the server
// reports throttling. The pacer bounds dispatch rate, not concurrency.
package pacer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const DefaultCushion = 50 * time.Millisecond

type Pacer struct {
	cushion time.Duration
	quota   *rate.Limiter

	mu       sync.Mutex
	deadline time.Time
}

type Option func(*Pacer)

// WithRequestsPerMinute adds a hard per-minute quota on top of the cushion.
// n <= 0 leaves the pacer unbounded apart from the cushion.
func WithRequestsPerMinute(n int) Option {
	return func(p *Pacer) {
		if n <= 0 {
			p.quota = nil
			return
		}
		p.quota = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

func New(cushion time.Duration, opts ...Option) *Pacer {
	if cushion < 0 {
		cushion = 0
	}
	p := &Pacer{cushion: cushion, deadline: time.Now()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait blocks until the caller's dispatch turn. It returns ctx.Err() if the
// context ends first; the reserved turn is not given back.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	now := time.Now()
	if p.deadline.Before(now) {
		p.deadline = now
	}
	p.deadline = p.deadline.Add(p.cushion)
	wait := p.deadline.Sub(now)
	p.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	if p.quota != nil {
		return p.quota.Wait(ctx)
	}
	return nil
}

// Cooldown pushes the shared deadline d past max(deadline, now).
func (p *Pacer) Cooldown(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if now := time.Now(); p.deadline.Before(now) {
		p.deadline = now
	}
	p.deadline = p.deadline.Add(d)
}

func (p *Pacer) Deadline() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deadline
}

func (p *Pacer) Cushion() time.Duration {
	return p.cushion
}
