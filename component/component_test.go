// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"errors"
	"testing"

	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/surface"
	"github.com/google/go-cmp/cmp"
)

// box is a leaf component with a fixed request that counts its
// layouts, draws, and listener calls.
type box struct {
	Base
	req Request

	layouts, draws     int
	listens, unlistens int
}

func newBox(sched *render.Scheduler, req Request) *box {
	b := &box{req: req}
	b.Init(b, sched, "box")
	return b
}

func flex() Request { return Request{WantsWidth: true, WantsHeight: true} }

func (b *box) RequestedSpace(w, h float64) Request { return b.req }

func (b *box) ComputeLayout(x, y, w, h float64) error {
	b.layouts++
	return b.Base.ComputeLayout(x, y, w, h)
}

func (b *box) Draw(n *surface.Node, w, h float64) error {
	b.draws++
	n.Rect(0, 0, w, h, "")
	return nil
}

func (b *box) Listen()   { b.listens++ }
func (b *box) Unlisten() { b.unlistens++ }

func bounds(c Component) [4]float64 {
	x, y, w, h := c.base().Bounds()
	return [4]float64{x, y, w, h}
}

func TestStateMachine(t *testing.T) {
	b := newBox(nil, flex())
	if b.State() != Unanchored {
		t.Fatalf("new component is %v", b.State())
	}
	if err := b.ComputeLayout(0, 0, 10, 10); !errors.Is(err, ErrNotAnchored) {
		t.Errorf("ComputeLayout before Anchor: got %v, want ErrNotAnchored", err)
	}

	root := surface.NewRoot(100, 100)
	if err := b.Anchor(root); err != nil {
		t.Fatal(err)
	}
	if b.State() != Anchored || b.listens != 1 {
		t.Fatalf("after Anchor: state %v, listens %d", b.State(), b.listens)
	}
	if err := b.Render(); !errors.Is(err, ErrNotLaidOut) {
		t.Errorf("Render before layout: got %v, want ErrNotLaidOut", err)
	}
	if b.draws != 0 {
		t.Errorf("Draw called before layout")
	}

	for i := 0; i < 2; i++ {
		if err := b.ComputeLayout(5, 6, 20, 30); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([4]float64{5, 6, 20, 30}, bounds(b)); diff != "" {
			t.Errorf("layout %d (-want +got):\n%s", i, diff)
		}
	}
	if x, y := b.Node().Origin(); x != 5 || y != 6 {
		t.Errorf("node origin is (%v,%v), want (5,6)", x, y)
	}
	if b.State() != LayoutComputed {
		t.Errorf("after ComputeLayout: %v", b.State())
	}
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}
	if b.State() != Rendered || b.draws != 1 {
		t.Errorf("after Render: state %v, draws %d", b.State(), b.draws)
	}
	if err := b.Render(); err != nil || len(b.Node().Ops()) != 1 {
		t.Errorf("Render did not clear old drawing: %d ops", len(b.Node().Ops()))
	}

	// Anchoring to the same node does nothing.
	node := b.Node()
	if err := b.Anchor(root); err != nil || b.Node() != node || b.State() != Rendered {
		t.Errorf("re-anchoring to the same node changed the component")
	}

	// Anchoring elsewhere detaches first.
	other := surface.NewRoot(50, 50)
	if err := b.Anchor(other); err != nil {
		t.Fatal(err)
	}
	if len(root.Children()) != 0 || len(other.Children()) != 1 {
		t.Errorf("re-anchoring did not move the drawing node")
	}
	if b.State() != Anchored || b.unlistens != 1 || b.listens != 2 {
		t.Errorf("after re-anchor: state %v, listens %d, unlistens %d", b.State(), b.listens, b.unlistens)
	}

	b.Detach()
	if b.State() != Unanchored || b.Node() != nil || len(other.Children()) != 0 {
		t.Errorf("Detach left the component anchored")
	}
	if b.unlistens != 2 {
		t.Errorf("Detach did not remove listeners")
	}
	b.Detach()
	if err := b.Anchor(nil); err == nil {
		t.Errorf("anchoring to nil succeeded")
	}
}

func TestAlignment(t *testing.T) {
	b := newBox(nil, Request{Width: 10, Height: 10})
	root := surface.NewRoot(100, 50)
	if err := RenderTo(b, root); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([4]float64{45, 20, 10, 10}, bounds(b)); diff != "" {
		t.Errorf("centered (-want +got):\n%s", diff)
	}

	// SetAlignment relays out immediately without a frame source.
	b.SetAlignment(AlignEnd, AlignStart)
	if diff := cmp.Diff([4]float64{90, 0, 10, 10}, bounds(b)); diff != "" {
		t.Errorf("end/start aligned (-want +got):\n%s", diff)
	}
	if x, y, w, h := b.Allocation(); x != 0 || y != 0 || w != 100 || h != 50 {
		t.Errorf("allocation is (%v,%v,%v,%v)", x, y, w, h)
	}
}

func TestRootInvalidateUsesHostSize(t *testing.T) {
	var frames render.ManualFrames
	sched := render.NewScheduler(&frames)
	b := newBox(sched, flex())
	b.Invalidate()
	if frames.Pending() != 0 {
		t.Errorf("invalidating an unanchored component requested a frame")
	}
	if err := b.Anchor(surface.NewRoot(30, 40)); err != nil {
		t.Fatal(err)
	}
	b.Redraw()
	if frames.Pending() != 0 {
		t.Errorf("redrawing a component that was never laid out requested a frame")
	}
	b.Invalidate()
	frames.Step()
	if diff := cmp.Diff([4]float64{0, 0, 30, 40}, bounds(b)); diff != "" {
		t.Errorf("root layout (-want +got):\n%s", diff)
	}
	if b.draws != 1 {
		t.Errorf("draws = %d, want 1", b.draws)
	}
}

func TestGroup(t *testing.T) {
	a := newBox(nil, Request{Width: 10, Height: 40, WantsWidth: true})
	b := newBox(nil, Request{Width: 30, Height: 20})
	g, err := NewGroup(nil, a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := Request{Width: 30, Height: 40, WantsWidth: true}
	if diff := cmp.Diff(want, g.RequestedSpace(100, 100)); diff != "" {
		t.Errorf("group request (-want +got):\n%s", diff)
	}

	root := surface.NewRoot(100, 100)
	if err := RenderTo(g, root); err != nil {
		t.Fatal(err)
	}
	kids := g.Node().Children()
	if len(kids) != 2 || kids[0] != a.Node() || kids[1] != b.Node() {
		t.Errorf("children are not drawn in declaration order")
	}
	// The group is fixed height, so it shrinks to 40 and centers.
	if diff := cmp.Diff([4]float64{0, 30, 100, 40}, bounds(g)); diff != "" {
		t.Errorf("group bounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([4]float64{35, 10, 30, 20}, bounds(b)); diff != "" {
		t.Errorf("child bounds (-want +got):\n%s", diff)
	}
	if a.draws != 1 || b.draws != 1 {
		t.Errorf("draws = %d, %d; want 1, 1", a.draws, b.draws)
	}

	g.Remove(a)
	if len(g.Components()) != 1 || a.State() != Unanchored || a.Parent() != nil {
		t.Errorf("Remove did not detach the child")
	}
	if err := g.Append(g); err == nil {
		t.Errorf("adding a group to itself succeeded")
	}
}

func TestMoveBetweenContainers(t *testing.T) {
	b := newBox(nil, flex())
	g1, _ := NewGroup(nil, b)
	g2, _ := NewGroup(nil)
	root := surface.NewRoot(10, 10)
	if err := g1.Anchor(root); err != nil {
		t.Fatal(err)
	}
	if err := g2.Append(b); err != nil {
		t.Fatal(err)
	}
	if len(g1.Components()) != 0 || b.Parent() != Component(g2) {
		t.Errorf("child was not moved")
	}
	if b.State() != Unanchored {
		t.Errorf("child is anchored under an unanchored group")
	}
}
