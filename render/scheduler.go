// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render batches layout and draw work into frames.
//
// A Scheduler collects the components that need their layout
// recomputed and the components that need to be redrawn, and flushes
// both sets once per frame in two strict passes: every pending layout
// first, then every pending render. A component registered any
// number of times before a flush is processed once by it.
package render

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// Warning reports errors from flushes that have no caller to return
// them to, such as frame-driven flushes.
var Warning = log.New(os.Stderr, "[plotkit] ", log.Lshortfile)

// A Target is something the Scheduler can lay out and render.
type Target interface {
	// Relayout recomputes the target's layout from the space it
	// was last allocated.
	Relayout() error

	// Render redraws the target.
	Render() error
}

// Nested is implemented by Targets that live in a hierarchy. When a
// target's ancestor is pending in the same pass, the ancestor's work
// covers the target and the target is skipped.
type Nested interface {
	Target

	// RenderParent returns the target's parent, or nil.
	RenderParent() Target
}

// A FrameRequester is the host's single-shot "next frame" primitive.
// RequestFrame arranges for fn to be called once, on the goroutine
// that owns the scheduler, and returns a function that cancels the
// request if it has not run yet.
type FrameRequester interface {
	RequestFrame(fn func()) (cancel func())
}

// Scheduler is the render controller. It is not safe for concurrent
// use: all registrations and flushes must happen on the single
// goroutine that owns it (typically the one running a Loop).
type Scheduler struct {
	frames FrameRequester

	layout, render targetSet

	requested bool
	cancel    func()

	// OnError is called with the aggregate error of a flush that
	// was not started by an explicit call to Flush. If nil, errors
	// are logged to Warning.
	OnError func(error)
}

// NewScheduler returns a Scheduler that batches work into frames
// requested from frames. If frames is nil, the scheduler is disabled:
// every registration lays out or renders its target immediately.
func NewScheduler(frames FrameRequester) *Scheduler {
	return &Scheduler{frames: frames}
}

// Enabled reports whether s batches work into frames.
func (s *Scheduler) Enabled() bool {
	return s.frames != nil
}

// Pending reports whether a frame has been requested and not yet
// flushed.
func (s *Scheduler) Pending() bool {
	return s.requested
}

// RegisterToRender schedules t to be rendered in the next flush.
func (s *Scheduler) RegisterToRender(t Target) {
	if !s.Enabled() {
		s.report(t.Render())
		return
	}
	s.render.add(t)
	s.requestFrame()
}

// RegisterToComputeLayout schedules t to be laid out and then
// rendered in the next flush.
func (s *Scheduler) RegisterToComputeLayout(t Target) {
	if !s.Enabled() {
		s.report(joinErrs(t.Relayout(), t.Render()))
		return
	}
	s.layout.add(t)
	s.render.add(t)
	s.requestFrame()
}

// Deregister removes t from both pending sets. Components call this
// when they are detached.
func (s *Scheduler) Deregister(t Target) {
	s.layout.remove(t)
	s.render.remove(t)
}

// IsQueued reports whether t is pending layout or render.
func (s *Scheduler) IsQueued(t Target) (layout, render bool) {
	return s.layout.has(t), s.render.has(t)
}

// ErrLayoutUnstable is reported by a flush whose layout pass kept
// registering more layout work for maxLayoutPasses rounds.
var ErrLayoutUnstable = errors.New("layout did not settle")

const maxLayoutPasses = 100

func (s *Scheduler) requestFrame() {
	if s.requested {
		return
	}
	s.requested = true
	s.cancel = s.frames.RequestFrame(func() {
		s.cancel = nil
		s.report(s.Flush())
	})
}

// Flush runs all pending work now. It first lays out every pending
// layout target, including targets registered for layout while this
// pass runs, and then renders every pending render target, including
// targets registered during the layout pass.
//
// An error from one target does not stop the others. Flush returns
// all of the errors joined together. If layout work is still being
// registered after maxLayoutPasses rounds, the rest is dropped and
// Flush reports ErrLayoutUnstable.
func (s *Scheduler) Flush() error {
	var errs []error

	for pass := 0; s.layout.len() > 0; pass++ {
		if pass == maxLayoutPasses {
			dropped := s.layout.take()
			errs = append(errs, fmt.Errorf("%w after %d passes, dropping %d targets", ErrLayoutUnstable, pass, len(dropped)))
			break
		}
		batch := s.layout.take()
		for _, t := range batch {
			if coveredBy(t, batch) {
				continue
			}
			if err := t.Relayout(); err != nil {
				errs = append(errs, fmt.Errorf("layout %v: %w", t, err))
			}
		}
	}

	batch := s.render.take()
	for _, t := range batch {
		if coveredBy(t, batch) {
			continue
		}
		if err := t.Render(); err != nil {
			errs = append(errs, fmt.Errorf("render %v: %w", t, err))
		}
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.requested = false
	if s.Enabled() && (s.render.len() > 0 || s.layout.len() > 0) {
		// Work registered while rendering goes in the next frame.
		s.requestFrame()
	}
	return errors.Join(errs...)
}

// Close drops all pending work and cancels any requested frame.
func (s *Scheduler) Close() {
	s.layout = targetSet{}
	s.render = targetSet{}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.requested = false
}

func (s *Scheduler) report(err error) {
	if err == nil {
		return
	}
	if s.OnError != nil {
		s.OnError(err)
		return
	}
	Warning.Print(err)
}

func joinErrs(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return errors.Join(a, b)
}

// coveredBy reports whether a strict ancestor of t is in batch.
func coveredBy(t Target, batch []Target) bool {
	n, ok := t.(Nested)
	if !ok {
		return false
	}
	for p := n.RenderParent(); p != nil; {
		for _, b := range batch {
			if b == p {
				return true
			}
		}
		pn, ok := p.(Nested)
		if !ok {
			break
		}
		p = pn.RenderParent()
	}
	return false
}

// targetSet is an insertion-ordered set of Targets.
type targetSet struct {
	order []Target
	index map[Target]bool
}

func (ts *targetSet) add(t Target) {
	if ts.index == nil {
		ts.index = make(map[Target]bool)
	}
	if ts.index[t] {
		return
	}
	ts.index[t] = true
	ts.order = append(ts.order, t)
}

func (ts *targetSet) remove(t Target) {
	if !ts.index[t] {
		return
	}
	delete(ts.index, t)
	for i, o := range ts.order {
		if o == t {
			ts.order = append(ts.order[:i:i], ts.order[i+1:]...)
			break
		}
	}
}

func (ts *targetSet) has(t Target) bool {
	return ts.index[t]
}

func (ts *targetSet) len() int {
	return len(ts.order)
}

// take empties ts and returns its previous contents.
func (ts *targetSet) take() []Target {
	order := ts.order
	ts.order, ts.index = nil, nil
	return order
}
