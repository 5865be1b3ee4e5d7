// Package frame schedules a unit of work once per tick until stopped.
package frame

import (
	"context"
	"sync"
	"time"
)

// Ticker delivers frame ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

// NewTicker returns a wall-clock ticker firing every d
func NewTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

// NewFPSTicker returns a wall-clock ticker firing fps times per second
func NewFPSTicker(fps int) Ticker {
	if fps <= 0 {
		fps = 60
	}
	return NewTicker(time.Second / time.Duration(fps))
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }
func (t *timeTicker) Stop()               { t.t.Stop() }

// ManualTicker fires only when Tick is called, for deterministic stepping
type ManualTicker struct {
	c    chan time.Time
	once sync.Once
	done chan struct{}
}

// NewManualTicker creates an unbuffered manual ticker
func NewManualTicker() *ManualTicker {
	return &ManualTicker{
		c:    make(chan time.Time),
		done: make(chan struct{}),
	}
}

func (m *ManualTicker) C() <-chan time.Time { return m.c }

// Stop makes further Tick calls return false
func (m *ManualTicker) Stop() {
	m.once.Do(func() { close(m.done) })
}

// Tick hands one tick to the consumer, blocking until it is received.
// It returns false if the ticker was stopped first.
func (m *ManualTicker) Tick() bool {
	select {
	case m.c <- time.Now():
		return true
	case <-m.done:
		return false
	}
}

// Handle controls a running loop
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the loop and waits for it to exit; safe to call repeatedly
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the loop has exited
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Finished returns a handle for a loop that never ran
func Finished() *Handle {
	h := &Handle{cancel: func() {}, done: make(chan struct{})}
	close(h.done)
	return h
}

// Start runs fn once per tick on a single goroutine until the handle is
// stopped or ctx is cancelled. The ticker is stopped on exit.
func Start(ctx context.Context, ticker Ticker, fn func()) *Handle {
	return StartWith[struct{}](ctx, ticker, nil, nil, fn)
}

// StartWith is Start with an extra wake-up channel: each value received on
// wake is passed to onWake on the loop goroutine, serialised with ticks.
func StartWith[T any](ctx context.Context, ticker Ticker, wake <-chan T, onWake func(T), fn func()) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-wake:
				if !ok {
					wake = nil
					continue
				}
				if onWake != nil {
					onWake(v)
				}
			case <-ticker.C():
				fn()
			}
		}
	}()
	return h
}
