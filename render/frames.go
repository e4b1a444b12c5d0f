// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"sync"
	"time"
)

// ManualFrames is a FrameRequester whose frames run only when Step is
// called. It is useful for tests and for batch programs that render
// a fixed number of frames.
type ManualFrames struct {
	next  int
	queue map[int]func()
	order []int
}

// RequestFrame queues fn for the next Step.
func (m *ManualFrames) RequestFrame(fn func()) func() {
	if m.queue == nil {
		m.queue = make(map[int]func())
	}
	id := m.next
	m.next++
	m.queue[id] = fn
	m.order = append(m.order, id)
	return func() { delete(m.queue, id) }
}

// Pending returns the number of frame callbacks waiting to run.
func (m *ManualFrames) Pending() int {
	return len(m.queue)
}

// Step runs every frame callback queued before the call and returns
// how many ran. Callbacks requested while stepping wait for the next
// Step.
func (m *ManualFrames) Step() int {
	order := m.order
	m.order = nil
	n := 0
	for _, id := range order {
		fn, ok := m.queue[id]
		if !ok {
			continue
		}
		delete(m.queue, id)
		fn()
		n++
	}
	return n
}

// Loop is a single-goroutine event loop. Every function posted to it
// and every frame it delivers runs on the goroutine that calls Run,
// so the Scheduler and everything it lays out never see concurrent
// access.
type Loop struct {
	interval time.Duration
	funcs    chan func()
	done     chan struct{}

	mu     sync.Mutex
	frames []*loopFrame
	timer  *time.Timer
}

type loopFrame struct {
	fn       func()
	canceled bool
}

// DefaultFrameInterval is the frame interval of a Loop created with
// a zero interval, roughly 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// NewLoop returns a Loop that delivers frames every interval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{interval: interval, funcs: make(chan func(), 64), done: make(chan struct{})}
}

// Post arranges for fn to run on the loop goroutine. It may be called
// from any goroutine. Functions posted after Run returns are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.funcs <- fn:
	case <-l.done:
	}
}

// RequestFrame arranges for fn to run on the loop goroutine at the
// next frame boundary. All frames requested before a boundary run
// together at that boundary.
func (l *Loop) RequestFrame(fn func()) func() {
	f := &loopFrame{fn: fn}
	l.mu.Lock()
	l.frames = append(l.frames, f)
	if l.timer == nil {
		l.timer = time.AfterFunc(l.interval, l.deliver)
	}
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		f.canceled = true
		l.mu.Unlock()
	}
}

// deliver runs on the timer goroutine and hands the pending frames to
// the loop goroutine.
func (l *Loop) deliver() {
	l.mu.Lock()
	frames := l.frames
	l.frames, l.timer = nil, nil
	l.mu.Unlock()
	l.Post(func() {
		for _, f := range frames {
			l.mu.Lock()
			canceled := f.canceled
			l.mu.Unlock()
			if !canceled {
				f.fn()
			}
		}
	})
}

// Run executes posted functions and frames until ctx is done. Run
// must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			if l.timer != nil {
				l.timer.Stop()
				l.timer = nil
			}
			l.frames = nil
			l.mu.Unlock()
			return ctx.Err()
		case fn := <-l.funcs:
			fn()
		}
	}
}
