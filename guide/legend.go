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

// Legend lists the values of a categorical color scale next to
// swatches of their colors, one per line.
type Legend struct {
	component.Base
	scale *scale.Scale
	font  Font
}

// NewLegend returns a Legend for the categorical scale s.
func NewLegend(sched *render.Scheduler, s *scale.Scale) (*Legend, error) {
	if s == nil {
		return nil, fmt.Errorf("legend: %w", plot.ErrMissingScale)
	}
	if !s.Categorical() {
		return nil, fmt.Errorf("legend: scale %v is not categorical", s)
	}
	l := &Legend{scale: s, font: DefaultFont}
	l.Init(l, sched, "legend")
	return l, nil
}

func (l *Legend) Listen() {
	l.scale.Broadcaster().RegisterListener(l.Key(), func(interface{}, ...interface{}) {
		l.Invalidate()
	})
}

func (l *Legend) Unlisten() {
	l.scale.Broadcaster().DeregisterListener(l.Key())
}

// entryMetrics returns the size of the largest entry label.
func (l *Legend) entryMetrics() (w, h float64) {
	_, h = l.font.MeasureString("0")
	for _, v := range l.scale.Domain() {
		ew, eh := l.font.MeasureString(Format(v))
		w, h = math.Max(w, ew), math.Max(h, eh)
	}
	return
}

func (l *Legend) RequestedSpace(w, h float64) component.Request {
	n := l.scale.Len()
	if n == 0 {
		return component.Request{}
	}
	ew, eh := l.entryMetrics()
	return component.Request{
		Width:  padding + eh + padding + ew + padding,
		Height: float64(n)*(eh+padding) + padding,
	}
}

func (l *Legend) Draw(n *surface.Node, w, h float64) error {
	_, eh := l.entryMetrics()
	y := float64(padding)
	for _, v := range l.scale.Domain() {
		n.Rect(padding, y, eh, eh, "fill:"+plot.CSSColor(l.scale.Map(v)))
		n.Text(2*padding+eh, y+eh*0.75, Format(v), "text-anchor:start")
		y += eh + padding
	}
	return nil
}
