// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guide

import (
	"fmt"
	"math"

	"github.com/aclements/go-plotkit/component"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/scale"
	"github.com/aclements/go-plotkit/surface"
)

// An Orient is the side of a plot an axis sits on.
type Orient int

const (
	Bottom Orient = iota
	Left
	Top
	Right
)

func (o Orient) String() string {
	switch o {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Orient(%d)", int(o))
}

// ParseOrient parses the name of an Orient.
func ParseOrient(s string) (Orient, error) {
	for o := Bottom; o <= Right; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown axis orientation %q", s)
}

func (o Orient) horizontal() bool {
	return o == Bottom || o == Top
}

// Axis draws the ticks of a scale along one side of a plot. It must
// share a row or column with the plot so that the scale's range lines
// up with it.
type Axis struct {
	component.Base

	scale  *scale.Scale
	orient Orient
	font   Font
	format func(interface{}) string

	tickLength float64
	maxTicks   int
}

// NewAxis returns an Axis for s on side orient.
func NewAxis(sched *render.Scheduler, s *scale.Scale, orient Orient) (*Axis, error) {
	if s == nil {
		return nil, fmt.Errorf("%v axis: %w", orient, plot.ErrMissingScale)
	}
	a := &Axis{
		scale:      s,
		orient:     orient,
		font:       DefaultFont,
		format:     Format,
		tickLength: 5,
		maxTicks:   8,
	}
	a.Init(a, sched, orient.String()+"-axis")
	return a, nil
}

func (a *Axis) Scale() *scale.Scale {
	return a.scale
}

// SetFormat sets the function that formats tick labels.
func (a *Axis) SetFormat(f func(interface{}) string) *Axis {
	a.format = f
	a.Invalidate()
	return a
}

func (a *Axis) SetFont(f Font) *Axis {
	a.font = f
	a.Invalidate()
	return a
}

func (a *Axis) SetTickLength(l float64) *Axis {
	a.tickLength = l
	a.Invalidate()
	return a
}

// SetMaxTicks sets the most ticks the axis will draw.
func (a *Axis) SetMaxTicks(n int) *Axis {
	a.maxTicks = n
	a.Invalidate()
	return a
}

func (a *Axis) Listen() {
	a.scale.Broadcaster().RegisterListener(a.Key(), func(interface{}, ...interface{}) {
		a.Invalidate()
	})
}

func (a *Axis) Unlisten() {
	a.scale.Broadcaster().DeregisterListener(a.Key())
}

type tick struct {
	pos   float64
	label string
}

func (a *Axis) ticks() []tick {
	var ts []tick
	for _, v := range a.scale.Ticks(a.maxTicks) {
		pos := a.scale.MapFloat(v)
		if math.IsNaN(pos) {
			continue
		}
		ts = append(ts, tick{pos, a.format(v)})
	}
	return ts
}

// RequestedSpace asks for room for the ticks and the widest or
// tallest label across the axis, and any length along it.
func (a *Axis) RequestedSpace(w, h float64) component.Request {
	var lw, lh float64
	for _, t := range a.ticks() {
		tw, th := a.font.MeasureString(t.label)
		lw, lh = math.Max(lw, tw), math.Max(lh, th)
	}
	if a.orient.horizontal() {
		return component.Request{Height: a.tickLength + padding + lh, WantsWidth: true}
	}
	return component.Request{Width: a.tickLength + padding + lw, WantsHeight: true}
}

func (a *Axis) Draw(n *surface.Node, w, h float64) error {
	const style = "stroke:#888;stroke-width:1"
	length := w
	if !a.orient.horizontal() {
		length = h
	}
	_, lh := a.font.MeasureString("0")
	tl := a.tickLength

	switch a.orient {
	case Bottom:
		n.Line(0, 0, w, 0, style)
	case Top:
		n.Line(0, h, w, h, style)
	case Left:
		n.Line(w, 0, w, h, style)
	case Right:
		n.Line(0, 0, 0, h, style)
	}
	for _, t := range a.ticks() {
		p := t.pos
		if p < -0.5 || p > length+0.5 {
			continue
		}
		switch a.orient {
		case Bottom:
			n.Line(p, 0, p, tl, style)
			n.Text(p, tl+padding+lh*0.75, t.label, "text-anchor:middle")
		case Top:
			n.Line(p, h, p, h-tl, style)
			n.Text(p, h-tl-padding, t.label, "text-anchor:middle")
		case Left:
			n.Line(w, p, w-tl, p, style)
			n.Text(w-tl-padding, p+lh*0.35, t.label, "text-anchor:end")
		case Right:
			n.Line(0, p, tl, p, style)
			n.Text(tl+padding, p+lh*0.35, t.label, "text-anchor:start")
		}
	}
	return nil
}
