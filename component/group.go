// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"errors"

	"github.com/aclements/go-plotkit/render"
)

// Group lays its children on top of each other, each occupying the
// group's whole region. Later children draw over earlier ones.
type Group struct {
	Base
	children []Component
}

// NewGroup returns a Group containing cs.
func NewGroup(sched *render.Scheduler, cs ...Component) (*Group, error) {
	g := &Group{}
	g.Init(g, sched, "group")
	for _, c := range cs {
		if err := g.Append(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Append adds c on top of g's other children. If c belongs to another
// container, it is detached from it first.
func (g *Group) Append(c Component) error {
	if err := adopt(&g.Base, c); err != nil {
		return err
	}
	g.children = append(g.children, c)
	g.Invalidate()
	return nil
}

// Remove detaches c if it is a child of g.
func (g *Group) Remove(c Component) {
	if c.base().parent == &g.Base {
		c.Detach()
	}
}

// Components returns g's children in drawing order.
func (g *Group) Components() []Component {
	return g.children
}

func (g *Group) removeChild(c Component) {
	for i, ch := range g.children {
		if ch == c {
			g.children = append(g.children[:i:i], g.children[i+1:]...)
			return
		}
	}
}

// RequestedSpace returns the largest request of g's children.
func (g *Group) RequestedSpace(w, h float64) Request {
	var r Request
	for _, c := range g.children {
		cr := c.RequestedSpace(w, h)
		r.Width = max(r.Width, cr.Width)
		r.Height = max(r.Height, cr.Height)
		r.WantsWidth = r.WantsWidth || cr.WantsWidth
		r.WantsHeight = r.WantsHeight || cr.WantsHeight
	}
	return r
}

func (g *Group) ComputeLayout(x, y, w, h float64) error {
	if err := g.Base.ComputeLayout(x, y, w, h); err != nil {
		return err
	}
	var errs []error
	for _, c := range g.children {
		requestFor(c, g.w, g.h)
		if err := c.ComputeLayout(0, 0, g.w, g.h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func max(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}
