// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot implements components that draw a dataset.
//
// A Plot binds visual attributes to data through projections: an
// accessor that extracts a value from each datum and an optional
// scale that maps it to a visual value. What the projected values
// look like on the surface is up to the Plot's Kind.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-plotkit/component"
	"github.com/aclements/go-plotkit/dataset"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/scale"
	"github.com/aclements/go-plotkit/surface"
)

// ErrMissingScale is returned when constructing a plot without a
// scale it requires.
var ErrMissingScale = errors.New("missing scale")

// A Projector computes one attribute of the datum d at index i.
type Projector func(d interface{}, i int) interface{}

// A Kind draws projected data. It is the part of a plot that
// differs between scatter plots, line plots and so on.
type Kind interface {
	// Class names the plot's drawing node.
	Class() string

	// Defaults returns accessors for attributes the kind draws
	// with when the plot does not project them.
	Defaults() map[string]*dataset.Accessor

	// Draw draws v into n.
	Draw(n *surface.Node, v *Projected) error
}

// An Includer is a Kind whose scales must always cover certain
// values, such as the baseline of a bar chart.
type Includer interface {
	Includes() map[string][]interface{}
}

type projection struct {
	attr  string
	acc   *dataset.Accessor
	scale *scale.Scale
}

// Plot is a component that draws one dataset.
type Plot struct {
	component.Base

	kind        Kind
	ds          *dataset.Dataset
	projections []*projection
	listening   bool
}

// New returns a Plot that draws ds as kind.
func New(sched *render.Scheduler, kind Kind, ds *dataset.Dataset) *Plot {
	p := &Plot{kind: kind, ds: ds}
	p.Init(p, sched, kind.Class())
	return p
}

// NewXY returns a Plot with x and y projected through xs and ys.
// Both scales are required.
func NewXY(sched *render.Scheduler, kind Kind, ds *dataset.Dataset, x *dataset.Accessor, xs *scale.Scale, y *dataset.Accessor, ys *scale.Scale) (*Plot, error) {
	if xs == nil {
		return nil, fmt.Errorf("%s plot: x: %w", kind.Class(), ErrMissingScale)
	}
	if ys == nil {
		return nil, fmt.Errorf("%s plot: y: %w", kind.Class(), ErrMissingScale)
	}
	p := New(sched, kind, ds)
	p.Project("x", x, xs).Project("y", y, ys)
	return p, nil
}

func isPrimary(attr string) bool {
	return attr == "x" || attr == "y"
}

func (p *Plot) Kind() Kind {
	return p.kind
}

func (p *Plot) Dataset() *dataset.Dataset {
	return p.ds
}

// Scale returns the scale attr is projected through, or nil.
func (p *Plot) Scale(attr string) *scale.Scale {
	if pr := p.find(attr); pr != nil {
		return pr.scale
	}
	return nil
}

func (p *Plot) find(attr string) *projection {
	for _, pr := range p.projections {
		if pr.attr == attr {
			return pr
		}
	}
	return nil
}

func (p *Plot) perspectiveKey(attr string) scale.PerspectiveKey {
	return scale.PerspectiveKey{Owner: p.Key(), Attr: attr}
}

// Project computes attr by applying acc to each datum and, if s is
// not nil, mapping the result through s.
//
// The x and y attributes are primary: their scales include the
// extent of acc over the plot's dataset in their auto domains and are
// padded. A scale previously projected on attr stops counting this
// plot's data.
func (p *Plot) Project(attr string, acc *dataset.Accessor, s *scale.Scale) *Plot {
	pr := p.find(attr)
	if pr == nil {
		pr = &projection{attr: attr}
		p.projections = append(p.projections, pr)
	}
	old := pr.scale
	pr.acc, pr.scale = acc, s

	if old != nil && old != s {
		p.untrack(attr, old)
		if p.listening && !p.uses(old) {
			old.Broadcaster().DeregisterListener(p.Key())
		}
	}
	if s != nil {
		if isPrimary(attr) {
			s.EnableAutoPadding()
		}
		p.track(pr)
		if p.listening {
			p.listenScale(s)
		}
	}
	p.Invalidate()
	return p
}

// track makes pr's scale cover pr's data, if pr is primary, and the
// values p's kind requires for pr.attr.
func (p *Plot) track(pr *projection) {
	key := p.perspectiveKey(pr.attr)
	if inc, ok := p.kind.(Includer); ok {
		if vals := inc.Includes()[pr.attr]; len(vals) > 0 {
			pr.scale.AddInclude(key, vals...)
		}
	}
	if isPrimary(pr.attr) {
		pr.scale.AddPerspective(key, p.ds, pr.acc)
	}
}

// untrack undoes track for attr on s.
func (p *Plot) untrack(attr string, s *scale.Scale) {
	key := p.perspectiveKey(attr)
	s.RemoveInclude(key)
	if isPrimary(attr) {
		s.RemovePerspective(key)
	}
}

// uses reports whether any projection maps through s.
func (p *Plot) uses(s *scale.Scale) bool {
	for _, pr := range p.projections {
		if pr.scale == s {
			return true
		}
	}
	return false
}

// SetDataset switches p to draw ds.
func (p *Plot) SetDataset(ds *dataset.Dataset) *Plot {
	if p.listening {
		p.ds.Broadcaster().DeregisterListener(p.Key())
	}
	p.ds = ds
	for _, pr := range p.projections {
		if pr.scale != nil && isPrimary(pr.attr) {
			pr.scale.AddPerspective(p.perspectiveKey(pr.attr), ds, pr.acc)
		}
	}
	if p.listening {
		p.listenDataset()
	}
	p.Invalidate()
	return p
}

// AttrToProjector returns a Projector for every attribute p draws
// with, including the kind's defaults for attributes p does not
// project. The projectors read the scales' current state, so callers
// should get a fresh set for every render.
func (p *Plot) AttrToProjector() map[string]Projector {
	out := make(map[string]Projector)
	for attr, acc := range p.kind.Defaults() {
		out[attr] = acc.Get
	}
	for _, pr := range p.projections {
		acc, s := pr.acc, pr.scale
		if s == nil {
			out[pr.attr] = acc.Get
			continue
		}
		out[pr.attr] = func(d interface{}, i int) interface{} {
			return s.Map(acc.Get(d, i))
		}
	}
	return out
}

// Listen installs p's listeners on its dataset and scales. It is
// called when p is anchored.
func (p *Plot) Listen() {
	p.listening = true
	p.listenDataset()
	for _, pr := range p.projections {
		if pr.scale == nil {
			continue
		}
		p.track(pr)
		p.listenScale(pr.scale)
	}
}

// Unlisten removes every listener, perspective and include p
// installed. It is called when p is unanchored.
func (p *Plot) Unlisten() {
	p.listening = false
	p.ds.Broadcaster().DeregisterListener(p.Key())
	for _, pr := range p.projections {
		if pr.scale == nil {
			continue
		}
		pr.scale.Broadcaster().DeregisterListener(p.Key())
		p.untrack(pr.attr, pr.scale)
	}
}

// Detach removes p from its container and stops its data counting
// toward its scales' domains, whether or not p was anchored. Anchoring
// p again restores them.
func (p *Plot) Detach() {
	p.Base.Detach()
	for _, pr := range p.projections {
		if pr.scale != nil {
			p.untrack(pr.attr, pr.scale)
		}
	}
}

// listenDataset makes data changes refresh p's primary scales and
// lay p out again.
func (p *Plot) listenDataset() {
	p.ds.Broadcaster().RegisterListener(p.Key(), func(interface{}, ...interface{}) {
		for _, pr := range p.projections {
			if pr.scale != nil && isPrimary(pr.attr) {
				pr.scale.Refresh()
			}
		}
		p.Invalidate()
	})
}

// listenScale makes domain or range changes of s redraw p.
func (p *Plot) listenScale(s *scale.Scale) {
	s.Broadcaster().RegisterListener(p.Key(), func(interface{}, ...interface{}) {
		p.Redraw()
	})
}

// ComputeLayout lays p out and points its x and y scales at the
// allocated region, with y increasing upward.
func (p *Plot) ComputeLayout(x, y, w, h float64) error {
	if err := p.Base.ComputeLayout(x, y, w, h); err != nil {
		return err
	}
	_, _, w, h = p.Bounds()
	if s := p.Scale("x"); s != nil {
		s.SetRange(0, w)
	}
	if s := p.Scale("y"); s != nil {
		s.SetRange(h, 0)
	}
	return nil
}

// Draw projects every datum in dataset order and passes the result to
// p's kind.
func (p *Plot) Draw(n *surface.Node, w, h float64) error {
	data := p.ds.Data()
	v := &Projected{
		N:      len(data),
		W:      w,
		H:      h,
		Attrs:  make(map[string][]interface{}),
		Scales: make(map[string]*scale.Scale),
	}
	for attr, f := range p.AttrToProjector() {
		vals := make([]interface{}, len(data))
		for i, d := range data {
			vals[i] = f(d, i)
		}
		v.Attrs[attr] = vals
	}
	for _, pr := range p.projections {
		if pr.scale != nil {
			v.Scales[pr.attr] = pr.scale
		}
	}
	return p.kind.Draw(n, v)
}

// Projected holds the projected attributes of every datum of a plot.
type Projected struct {
	N      int
	W, H   float64
	Attrs  map[string][]interface{}
	Scales map[string]*scale.Scale
}

// Float returns attribute attr of datum i as a number, or NaN.
func (v *Projected) Float(attr string, i int) float64 {
	vals, ok := v.Attrs[attr]
	if !ok {
		return math.NaN()
	}
	if f, ok := dataset.Float(vals[i]); ok {
		return f
	}
	return math.NaN()
}

// Color returns attribute attr of datum i as an SVG color.
func (v *Projected) Color(attr string, i int) string {
	vals, ok := v.Attrs[attr]
	if !ok {
		return "none"
	}
	return CSSColor(vals[i])
}

// CSSColor formats a color.Color or a color name as an SVG paint
// value. Anything else is "none".
func CSSColor(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case color.Color:
		r, g, b, a := c.RGBA()
		if a == 0 {
			return "none"
		}
		return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	}
	return "none"
}
