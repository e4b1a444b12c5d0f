// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeTarget struct {
	name   string
	parent *fakeTarget
	log    *[]string

	onRelayout func()
	err        error
}

func (f *fakeTarget) Relayout() error {
	*f.log = append(*f.log, "layout "+f.name)
	if f.onRelayout != nil {
		f.onRelayout()
	}
	return f.err
}

func (f *fakeTarget) Render() error {
	*f.log = append(*f.log, "render "+f.name)
	return f.err
}

func (f *fakeTarget) RenderParent() Target {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeTarget) String() string { return f.name }

func TestBatching(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	a := &fakeTarget{name: "a", log: &log}
	b := &fakeTarget{name: "b", log: &log}

	s.RegisterToRender(a)
	s.RegisterToComputeLayout(b)
	s.RegisterToComputeLayout(a)
	s.RegisterToRender(b)
	s.RegisterToComputeLayout(b)

	if len(log) != 0 {
		t.Fatalf("work ran before the frame: %v", log)
	}
	if frames.Pending() != 1 || !s.Pending() {
		t.Fatalf("want exactly one requested frame, have %d", frames.Pending())
	}
	frames.Step()

	want := []string{"layout b", "layout a", "render a", "render b"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("flush order (-want +got):\n%s", diff)
	}
	if s.Pending() {
		t.Errorf("frame still requested after flush")
	}
}

func TestReentrantLayout(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	parent := &fakeTarget{name: "parent", log: &log}
	child := &fakeTarget{name: "child", log: &log}
	child.onRelayout = func() { s.RegisterToComputeLayout(parent) }

	s.RegisterToComputeLayout(child)
	frames.Step()

	want := []string{"layout child", "layout parent", "render child", "render parent"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("flush order (-want +got):\n%s", diff)
	}
	if frames.Pending() != 0 {
		t.Errorf("cascading layout needed another frame")
	}
}

func TestUnstableLayout(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	a := &fakeTarget{name: "a", log: &log}
	a.onRelayout = func() { s.RegisterToComputeLayout(a) }

	s.RegisterToComputeLayout(a)
	err := s.Flush()
	if !errors.Is(err, ErrLayoutUnstable) {
		t.Fatalf("Flush of a layout that never settles: got %v, want ErrLayoutUnstable", err)
	}
	if n := strings.Count(strings.Join(log, "\n"), "layout a"); n != maxLayoutPasses {
		t.Errorf("laid out %d times, want %d", n, maxLayoutPasses)
	}
	if log[len(log)-1] != "render a" {
		t.Errorf("unstable target was not rendered: %v", log[len(log)-3:])
	}
	if s.Pending() || frames.Pending() != 0 {
		t.Errorf("dropped layout work is still pending")
	}
}

func TestAncestorCovers(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	root := &fakeTarget{name: "root", log: &log}
	mid := &fakeTarget{name: "mid", parent: root, log: &log}
	leaf := &fakeTarget{name: "leaf", parent: mid, log: &log}

	s.RegisterToComputeLayout(leaf)
	s.RegisterToComputeLayout(root)
	frames.Step()

	want := []string{"layout root", "render root"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("flush (-want +got):\n%s", diff)
	}
}

func TestDisabled(t *testing.T) {
	s := NewScheduler(nil)
	var log []string
	a := &fakeTarget{name: "a", log: &log}
	s.RegisterToComputeLayout(a)
	if diff := cmp.Diff([]string{"layout a", "render a"}, log); diff != "" {
		t.Errorf("immediate mode (-want +got):\n%s", diff)
	}
	s.RegisterToRender(a)
	if len(log) != 3 {
		t.Errorf("RegisterToRender did not render immediately: %v", log)
	}
}

func TestErrorsDoNotStopBatch(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var got error
	s.OnError = func(err error) { got = err }
	var log []string
	boom := errors.New("boom")
	a := &fakeTarget{name: "a", log: &log, err: boom}
	b := &fakeTarget{name: "b", log: &log}
	s.RegisterToComputeLayout(a)
	s.RegisterToComputeLayout(b)
	frames.Step()

	if len(log) != 4 {
		t.Errorf("failing target stopped the batch: %v", log)
	}
	if !errors.Is(got, boom) {
		t.Fatalf("want aggregate error wrapping boom, got %v", got)
	}
	if n := strings.Count(got.Error(), "boom"); n != 2 {
		t.Errorf("want layout and render errors, got %q", got)
	}
}

func TestDeregisterAndClose(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	a := &fakeTarget{name: "a", log: &log}
	b := &fakeTarget{name: "b", log: &log}
	s.RegisterToComputeLayout(a)
	s.RegisterToComputeLayout(b)
	s.Deregister(a)
	if l, r := s.IsQueued(a); l || r {
		t.Errorf("deregistered target still queued")
	}
	frames.Step()
	if diff := cmp.Diff([]string{"layout b", "render b"}, log); diff != "" {
		t.Errorf("flush (-want +got):\n%s", diff)
	}

	s.RegisterToRender(a)
	s.Close()
	if frames.Step() != 0 || s.Pending() {
		t.Errorf("Close did not cancel the pending frame")
	}
}

func TestExplicitFlushCancelsFrame(t *testing.T) {
	var frames ManualFrames
	s := NewScheduler(&frames)
	var log []string
	s.RegisterToRender(&fakeTarget{name: "a", log: &log})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if frames.Step() != 0 {
		t.Errorf("frame still ran after explicit Flush")
	}
	if len(log) != 1 {
		t.Errorf("want one render, got %v", log)
	}
}

func TestLoop(t *testing.T) {
	l := NewLoop(time.Millisecond)
	s := NewScheduler(l)
	var log []string
	a := &fakeTarget{name: "a", log: &log}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	l.Post(func() {
		s.RegisterToComputeLayout(a)
		s.RegisterToRender(a)
		s.OnError = func(error) {}
		l.Post(func() {
			// Runs before the frame boundary.
			if len(log) != 0 {
				t.Errorf("work ran before the frame: %v", log)
			}
		})
	})
	go func() {
		for {
			time.Sleep(time.Millisecond)
			done := make(chan bool, 1)
			l.Post(func() { done <- len(log) == 2 })
			select {
			case ok := <-done:
				if ok {
					cancel()
					return
				}
			case <-l.done:
				return
			}
		}
	}()
	if err := l.Run(ctx); err != context.Canceled {
		t.Fatalf("Run returned %v", err)
	}
	if diff := cmp.Diff([]string{"layout a", "render a"}, log); diff != "" {
		t.Errorf("loop flush (-want +got):\n%s", diff)
	}
}
