// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package component provides the layout tree that charts are built
// from.
//
// A Component moves through four states. It starts Unanchored. Anchor
// attaches it to a surface.Node and creates its own drawing node
// (Anchored). Its parent, or the caller for a root, then allocates it
// space with ComputeLayout (LayoutComputed), after which it can be
// drawn with Render (Rendered). Invalidation moves a Rendered
// component back to LayoutComputed through the Scheduler, and Detach
// returns it to Unanchored from any state.
//
// Concrete components embed Base and call Init with themselves, so
// that Base can reach the methods they override.
package component

import (
	"errors"
	"fmt"

	"github.com/aclements/go-plotkit/broadcast"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/surface"
)

var (
	// ErrNotAnchored is returned when laying out a component that
	// has no drawing node.
	ErrNotAnchored = errors.New("component is not anchored")

	// ErrNotLaidOut is returned when rendering a component that
	// has never been allocated space.
	ErrNotLaidOut = errors.New("component has not been laid out")
)

// State is a component's position in its lifecycle.
type State int

const (
	Unanchored State = iota
	Anchored
	LayoutComputed
	Rendered
)

func (s State) String() string {
	switch s {
	case Unanchored:
		return "Unanchored"
	case Anchored:
		return "Anchored"
	case LayoutComputed:
		return "LayoutComputed"
	case Rendered:
		return "Rendered"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Request is a component's answer to an offer of space: the
// minimum size it needs and whether it can use more than that in
// each direction.
type Request struct {
	Width, Height           float64
	WantsWidth, WantsHeight bool
}

// Component is a node in the layout tree.
type Component interface {
	render.Target

	// RequestedSpace returns the space the component wants given
	// an offer of w by h. It must not change the component's
	// state.
	RequestedSpace(w, h float64) Request

	// ComputeLayout allocates the component a w by h region at
	// (x, y) relative to its parent and, for containers, lays out
	// the children. Calling it twice with the same arguments has
	// the same effect as calling it once.
	ComputeLayout(x, y, w, h float64) error

	// Anchor attaches the component to n. Anchoring to the node
	// the component is already anchored to does nothing.
	// Anchoring to a different node detaches it from the old one
	// first.
	Anchor(n *surface.Node) error

	// Detach removes the component from its parent container and
	// its drawing node, and removes every listener it installed.
	Detach()

	base() *Base
}

// A Drawer is a component that draws something into its own node.
// Draw is called by Render with the node cleared and the component's
// current size.
type Drawer interface {
	Draw(n *surface.Node, w, h float64) error
}

// A Listener is a component that follows external state, such as
// scales or datasets. Listen is called when the component is
// anchored and Unlisten when it is unanchored, so a component that is
// not on a surface never receives notifications.
type Listener interface {
	Listen()
	Unlisten()
}

// container is implemented by components with children.
type container interface {
	Component
	Components() []Component
	removeChild(c Component)
}

// Alignment positions a fixed-size component within a larger
// allocation, as a fraction of the unused space placed before it.
type Alignment float64

const (
	AlignStart  Alignment = 0
	AlignCenter Alignment = 0.5
	AlignEnd    Alignment = 1
)

// immediate is the scheduler of components initialized without one.
var immediate = render.NewScheduler(nil)

// Base implements the component state machine. It is meant to be
// embedded; the embedding type supplies RequestedSpace and optionally
// Draw, and containers additionally override ComputeLayout.
type Base struct {
	self  Component
	sched *render.Scheduler
	key   broadcast.Key
	class string

	state  State
	host   *surface.Node
	node   *surface.Node
	parent *Base

	// avail is the last allocation from the parent. x, y, w, h is
	// the region the component actually occupies within it.
	avail      [4]float64
	laidOut    bool
	x, y, w, h float64

	// offer and req record the last RequestedSpace exchange with
	// the parent container.
	offer  [2]float64
	req    Request
	hasReq bool

	xAlign, yAlign Alignment
}

// Init prepares b for use. self must be the component that embeds b.
// If sched is nil, the component lays out and renders synchronously
// whenever it is invalidated.
func (b *Base) Init(self Component, sched *render.Scheduler, class string) {
	if sched == nil {
		sched = immediate
	}
	b.self, b.sched, b.class = self, sched, class
	b.key = broadcast.NewKey()
	b.xAlign, b.yAlign = AlignCenter, AlignCenter
}

func (b *Base) base() *Base { return b }

func (b *Base) String() string {
	return fmt.Sprintf("%s#%d", b.class, b.key)
}

// Key returns the identity b uses for the listeners and perspectives
// it registers.
func (b *Base) Key() broadcast.Key {
	return b.key
}

func (b *Base) Scheduler() *render.Scheduler {
	return b.sched
}

func (b *Base) State() State {
	return b.state
}

// Node returns b's drawing node, or nil if b is not anchored.
func (b *Base) Node() *surface.Node {
	return b.node
}

// Parent returns b's container, or nil.
func (b *Base) Parent() Component {
	if b.parent == nil {
		return nil
	}
	return b.parent.self
}

// RenderParent returns b's container as a render.Target so the
// Scheduler can skip b when its container is already pending.
func (b *Base) RenderParent() render.Target {
	if b.parent == nil {
		return nil
	}
	return b.parent.self
}

// Bounds returns the region b occupies relative to its parent.
func (b *Base) Bounds() (x, y, w, h float64) {
	return b.x, b.y, b.w, b.h
}

// Allocation returns the space b's parent last allocated to it.
func (b *Base) Allocation() (x, y, w, h float64) {
	return b.avail[0], b.avail[1], b.avail[2], b.avail[3]
}

// SetAlignment sets where b is placed within an allocation larger
// than it wants in a fixed dimension. The default is centered.
func (b *Base) SetAlignment(x, y Alignment) {
	b.xAlign, b.yAlign = x, y
	b.Invalidate()
}

// RequestedSpace is the default request: no minimum size, and any
// extra space is welcome.
func (b *Base) RequestedSpace(w, h float64) Request {
	return Request{WantsWidth: true, WantsHeight: true}
}

func (b *Base) Anchor(n *surface.Node) error {
	if n == nil {
		return fmt.Errorf("anchoring %v: nil node", b)
	}
	if b.state != Unanchored {
		if n == b.host {
			return nil
		}
		b.unanchor()
	}
	b.host = n
	b.node = n.NewChild(b.class)
	b.state = Anchored
	if c, ok := b.self.(container); ok {
		for _, ch := range c.Components() {
			if err := ch.Anchor(b.node); err != nil {
				return err
			}
		}
	}
	if l, ok := b.self.(Listener); ok {
		l.Listen()
	}
	return nil
}

// unanchor returns b and its subtree to the Unanchored state. Children
// stay in their containers.
func (b *Base) unanchor() {
	if b.state == Unanchored {
		return
	}
	if c, ok := b.self.(container); ok {
		for _, ch := range c.Components() {
			ch.base().unanchor()
		}
	}
	if l, ok := b.self.(Listener); ok {
		l.Unlisten()
	}
	b.sched.Deregister(b.self)
	b.node.Remove()
	b.node, b.host = nil, nil
	b.state = Unanchored
	b.laidOut = false
	b.hasReq = false
}

func (b *Base) Detach() {
	if b.parent != nil {
		p := b.parent
		p.self.(container).removeChild(b.self)
		b.parent = nil
		p.Invalidate()
	}
	b.unanchor()
}

// ComputeLayout records the allocation and positions b's node. A
// component that does not want more space in a dimension is shrunk to
// its request in that dimension and aligned within the allocation.
func (b *Base) ComputeLayout(x, y, w, h float64) error {
	if b.state == Unanchored {
		return fmt.Errorf("laying out %v: %w", b, ErrNotAnchored)
	}
	w, h = nonneg(w), nonneg(h)
	b.avail = [4]float64{x, y, w, h}
	b.laidOut = true

	r := b.self.RequestedSpace(w, h)
	if !r.WantsWidth && r.Width < w {
		x += (w - r.Width) * float64(b.xAlign)
		w = r.Width
	}
	if !r.WantsHeight && r.Height < h {
		y += (h - r.Height) * float64(b.yAlign)
		h = r.Height
	}
	b.x, b.y, b.w, b.h = x, y, w, h
	b.node.Translate(x, y)
	b.node.Resize(w, h)
	b.state = LayoutComputed
	return nil
}

// fill makes b occupy its whole allocation, undoing the shrink and
// alignment of ComputeLayout.
func (b *Base) fill() {
	b.x, b.y, b.w, b.h = b.avail[0], b.avail[1], b.avail[2], b.avail[3]
	b.node.Translate(b.x, b.y)
	b.node.Resize(b.w, b.h)
}

// Relayout repeats b's last layout. A root that was never laid out
// takes the size of the node it is anchored to. If b's request has
// changed since its container last asked, the container is scheduled
// for layout too.
func (b *Base) Relayout() error {
	if b.state == Unanchored {
		return fmt.Errorf("laying out %v: %w", b, ErrNotAnchored)
	}
	if b.parent != nil {
		if !b.laidOut || (b.hasReq && b.self.RequestedSpace(b.offer[0], b.offer[1]) != b.req) {
			b.sched.RegisterToComputeLayout(b.parent.self)
		}
		if !b.laidOut {
			return nil
		}
	}
	x, y, w, h := b.Allocation()
	if !b.laidOut {
		w, h = b.host.Size()
	}
	return b.self.ComputeLayout(x, y, w, h)
}

// Render redraws b and, for containers, its children.
func (b *Base) Render() error {
	if b.state == Unanchored {
		return fmt.Errorf("rendering %v: %w", b, ErrNotAnchored)
	}
	if !b.laidOut {
		return fmt.Errorf("rendering %v: %w", b, ErrNotLaidOut)
	}
	b.node.Clear()
	var errs []error
	if d, ok := b.self.(Drawer); ok {
		if err := d.Draw(b.node, b.w, b.h); err != nil {
			errs = append(errs, fmt.Errorf("drawing %v: %w", b, err))
		}
	}
	if c, ok := b.self.(container); ok {
		for _, ch := range c.Components() {
			if err := ch.Render(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	b.state = Rendered
	return errors.Join(errs...)
}

// Invalidate schedules b for layout and render. It does nothing if b
// is not anchored.
func (b *Base) Invalidate() {
	if b.state == Unanchored {
		return
	}
	b.sched.RegisterToComputeLayout(b.self)
}

// Redraw schedules b to be rendered with its current layout. It does
// nothing if b has not been laid out.
func (b *Base) Redraw() {
	if b.state == Unanchored || !b.laidOut {
		return
	}
	b.sched.RegisterToRender(b.self)
}

// RenderTo anchors c to n, lays it out to fill n, and renders it
// immediately.
func RenderTo(c Component, n *surface.Node) error {
	if err := c.Anchor(n); err != nil {
		return err
	}
	w, h := n.Size()
	if err := c.ComputeLayout(0, 0, w, h); err != nil {
		return err
	}
	return c.Render()
}

// requestFor asks c for its space given an offer of w by h and
// remembers the answer so c can tell later whether it changed.
func requestFor(c Component, w, h float64) Request {
	r := c.RequestedSpace(w, h)
	cb := c.base()
	cb.offer = [2]float64{w, h}
	cb.req = r
	cb.hasReq = true
	return r
}

// adopt makes p the parent of c, taking c out of any other container,
// and anchors c under p if p is anchored.
func adopt(p *Base, c Component) error {
	cb := c.base()
	if cb.self == nil {
		return fmt.Errorf("component %T was not initialized", c)
	}
	if cb.parent == p {
		return fmt.Errorf("%v is already in %v", c, p)
	}
	for a := p; a != nil; a = a.parent {
		if a == cb {
			return fmt.Errorf("cannot add %v to its own subtree", c)
		}
	}
	if cb.parent != nil {
		c.Detach()
	}
	cb.parent = p
	if p.node != nil {
		return c.Anchor(p.node)
	}
	return nil
}

func nonneg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
