// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps data values to visual values.
//
// A Scale pairs a domain (the data space) with a range (usually pixel
// positions) and delegates the actual mapping to a Mapping strategy.
// By default a Scale is in auto-domain mode: its domain is the union
// of the extents of every registered perspective, where a perspective
// is a (dataset, accessor) pair contributed by a renderer. Every
// change to the domain or range is broadcast to the Scale's listeners.
package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-plotkit/broadcast"
	"github.com/aclements/go-plotkit/dataset"
)

// DefaultPadProportion is the padding applied to auto domains of
// scales that back a primary (x or y) channel.
const DefaultPadProportion = 0.05

// niceTicks is the tick count used when rounding auto domains.
const niceTicks = 10

// A PerspectiveKey identifies one renderer attribute projected through
// a Scale.
type PerspectiveKey struct {
	Owner broadcast.Key
	Attr  string
}

type keyedInclude struct {
	key  PerspectiveKey
	vals []interface{}
}

type perspective struct {
	key PerspectiveKey
	ds  *dataset.Dataset
	acc *dataset.Accessor
}

// Scale is a domain-to-range mapping that notifies listeners when
// either side changes.
type Scale struct {
	m   Mapping
	b   *broadcast.Broadcaster
	dom Domain
	rng [2]float64

	auto         bool
	perspectives []perspective
	includes     []interface{}
	keyed        []keyedInclude

	pad        float64
	nice       bool
	configured bool
}

// New returns an auto-domain Scale using mapping m with range [0, 1].
func New(m Mapping) *Scale {
	s := &Scale{m: m, dom: m.Default(), rng: [2]float64{0, 1}, auto: true}
	s.b = broadcast.New(s)
	return s
}

// NewLinear returns a linear quantitative Scale.
func NewLinear() *Scale { return New(Linear{}) }

// NewLog returns a logarithmic Scale with the given base.
func NewLog(base int) *Scale { return New(Log{Base: base}) }

// NewTime returns a linear Scale over time.Time values.
func NewTime() *Scale { return New(Time{}) }

// NewBand returns a categorical Scale that maps values to bands.
func NewBand() *Scale { return New(Band{}) }

// NewColor returns a categorical Scale that maps values to colors
// from DefaultColors.
func NewColor() *Scale { return New(Palette{}) }

func (s *Scale) String() string {
	if s.m.Categorical() {
		return fmt.Sprintf("%T %v => [%g,%g]", s.m, s.dom.Values, s.rng[0], s.rng[1])
	}
	return fmt.Sprintf("%T [%g,%g] => [%g,%g]", s.m, s.dom.Lo, s.dom.Hi, s.rng[0], s.rng[1])
}

// Mapping returns s's mapping strategy.
func (s *Scale) Mapping() Mapping {
	return s.m
}

// Categorical reports whether s has a categorical domain.
func (s *Scale) Categorical() bool {
	return s.m.Categorical()
}

// Broadcaster returns the Broadcaster s notifies when its domain or
// range changes.
func (s *Scale) Broadcaster() *broadcast.Broadcaster {
	return s.b
}

// Domain returns s's current domain. For quantitative scales, this is
// the two bounds converted to the mapping's value type (for example,
// time.Time for Time scales). For categorical scales, it is the
// ordered list of values.
func (s *Scale) Domain() []interface{} {
	if s.m.Categorical() {
		return append([]interface{}(nil), s.dom.Values...)
	}
	return []interface{}{s.m.Value(s.dom.Lo), s.m.Value(s.dom.Hi)}
}

// Bounds returns the numeric bounds of a quantitative domain.
func (s *Scale) Bounds() (lo, hi float64) {
	return s.dom.Lo, s.dom.Hi
}

// Len returns the number of values in a categorical domain.
func (s *Scale) Len() int {
	return len(s.dom.Values)
}

// SetDomain sets s's domain explicitly and broadcasts. This disables
// auto-domain mode until AutoDomain is called.
//
// A quantitative domain must be exactly two numeric values.
func (s *Scale) SetDomain(vals ...interface{}) error {
	var d Domain
	if s.m.Categorical() {
		d.Values = append([]interface{}(nil), vals...)
	} else {
		if len(vals) != 2 {
			return fmt.Errorf("quantitative domain needs 2 values, got %d", len(vals))
		}
		lo, ok1 := dataset.Float(vals[0])
		hi, ok2 := dataset.Float(vals[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("quantitative domain values must be numeric, got %v", vals)
		}
		d.Lo, d.Hi = lo, hi
	}
	s.auto = false
	s.dom = d
	s.b.Broadcast()
	return nil
}

// SetBounds is SetDomain for quantitative scales.
func (s *Scale) SetBounds(lo, hi float64) error {
	return s.SetDomain(lo, hi)
}

// Auto reports whether s is in auto-domain mode.
func (s *Scale) Auto() bool {
	return s.auto
}

// AutoDomain switches s back to auto-domain mode and recomputes its
// domain from its perspectives. It broadcasts if the domain changed.
func (s *Scale) AutoDomain() *Scale {
	s.auto = true
	s.Refresh()
	return s
}

// Refresh recomputes the domain of an auto-domain scale and
// broadcasts if it changed. It does nothing for scales with an
// explicit domain.
func (s *Scale) Refresh() {
	if !s.auto {
		return
	}
	d := s.computeDomain()
	if d.equal(&s.dom) {
		return
	}
	s.dom = d
	s.b.Broadcast()
}

func (s *Scale) computeDomain() Domain {
	if s.m.Categorical() {
		var d Domain
		seen := make(map[interface{}]bool)
		add := func(v interface{}) {
			if !seen[v] {
				seen[v] = true
				d.Values = append(d.Values, v)
			}
		}
		for _, p := range s.perspectives {
			e := p.ds.Extent(p.acc)
			if e.Numeric {
				continue
			}
			for _, v := range e.Values {
				add(v)
			}
		}
		s.eachInclude(add)
		return d
	}

	lo, hi := math.NaN(), math.NaN()
	expand := func(x float64) {
		if math.IsNaN(lo) || x < lo {
			lo = x
		}
		if math.IsNaN(hi) || x > hi {
			hi = x
		}
	}
	for _, p := range s.perspectives {
		e := p.ds.Extent(p.acc)
		if !e.Numeric || e.Empty() {
			continue
		}
		expand(e.Min)
		expand(e.Max)
	}
	s.eachInclude(func(v interface{}) {
		if x, ok := dataset.Float(v); ok && isFinite(x) {
			expand(x)
		}
	})
	if math.IsNaN(lo) {
		return s.m.Default()
	}
	d := Domain{Lo: lo, Hi: hi}
	if s.pad > 0 {
		s.m.Pad(&d, s.pad)
	}
	if s.nice {
		s.m.Nice(&d, niceTicks)
	}
	return d
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// Include adds v to the values an auto domain always covers, such as
// 0 for a bar chart's value axis.
func (s *Scale) Include(v interface{}) *Scale {
	s.includes = append(s.includes, v)
	s.Refresh()
	return s
}

// AddInclude is Include for values owned by key, such as a renderer
// attribute. A later AddInclude under the same key replaces vals.
func (s *Scale) AddInclude(key PerspectiveKey, vals ...interface{}) *Scale {
	vals = append([]interface{}(nil), vals...)
	for i := range s.keyed {
		if s.keyed[i].key == key {
			s.keyed[i].vals = vals
			s.Refresh()
			return s
		}
	}
	s.keyed = append(s.keyed, keyedInclude{key, vals})
	s.Refresh()
	return s
}

// RemoveInclude removes the values added under key. Removing an
// unknown key is a no-op.
func (s *Scale) RemoveInclude(key PerspectiveKey) {
	for i, k := range s.keyed {
		if k.key == key {
			s.keyed = append(s.keyed[:i:i], s.keyed[i+1:]...)
			s.Refresh()
			return
		}
	}
}

func (s *Scale) eachInclude(fn func(v interface{})) {
	for _, v := range s.includes {
		fn(v)
	}
	for _, k := range s.keyed {
		for _, v := range k.vals {
			fn(v)
		}
	}
}

// SetPadProportion sets the proportion of the auto domain's span
// added as padding (split between both ends).
func (s *Scale) SetPadProportion(p float64) *Scale {
	s.pad = p
	s.configured = true
	s.Refresh()
	return s
}

// SetNice controls whether auto domains are expanded to round values.
func (s *Scale) SetNice(nice bool) *Scale {
	s.nice = nice
	s.configured = true
	s.Refresh()
	return s
}

// EnableAutoPadding turns on padding and nice-ing of auto domains,
// unless they were configured with SetPadProportion or SetNice.
// Renderers call this for scales that back their primary channels.
func (s *Scale) EnableAutoPadding() {
	if s.configured || s.m.Categorical() {
		return
	}
	s.pad, s.nice = DefaultPadProportion, true
	s.Refresh()
}

// Range returns s's output interval.
func (s *Scale) Range() (r0, r1 float64) {
	return s.rng[0], s.rng[1]
}

// SetRange sets s's output interval and broadcasts if it changed.
// Components set the range of the scales they draw with when they
// are laid out.
func (s *Scale) SetRange(r0, r1 float64) *Scale {
	if s.rng[0] == r0 && s.rng[1] == r1 {
		return s
	}
	s.rng = [2]float64{r0, r1}
	s.b.Broadcast()
	return s
}

// Map maps one domain value through s. The result is a float64 for
// positional mappings or a visual value such as a color.Color.
func (s *Scale) Map(x interface{}) interface{} {
	y, _ := s.m.Map(x, &s.dom, s.rng)
	return y
}

// MapFloat maps x through s and returns the result as a float64,
// or NaN if the result is not a number.
func (s *Scale) MapFloat(x interface{}) float64 {
	y, ok := s.m.Map(x, &s.dom, s.rng)
	if !ok {
		return math.NaN()
	}
	f, ok := y.(float64)
	if !ok {
		return math.NaN()
	}
	return f
}

// Invert maps a range position back to a domain value.
func (s *Scale) Invert(y float64) interface{} {
	return s.m.Invert(y, &s.dom, s.rng)
}

// Ticks returns up to max representative domain values for axes.
func (s *Scale) Ticks(max int) []interface{} {
	return s.m.Ticks(&s.dom, max)
}

// Bandwidth returns the width of one band of a categorical scale.
func (s *Scale) Bandwidth() float64 {
	return Bandwidth(len(s.dom.Values), s.rng)
}

// AddPerspective registers the extent of acc over ds as contributing
// to s's auto domain. If key is already registered, its dataset and
// accessor are replaced.
//
// The domain is recomputed immediately.
func (s *Scale) AddPerspective(key PerspectiveKey, ds *dataset.Dataset, acc *dataset.Accessor) {
	p := perspective{key, ds, acc}
	for i := range s.perspectives {
		if s.perspectives[i].key == key {
			old := s.perspectives[i]
			s.perspectives[i] = p
			s.forget(old)
			s.Refresh()
			return
		}
	}
	s.perspectives = append(s.perspectives, p)
	s.Refresh()
}

// RemovePerspective removes the perspective registered under key.
// Removing an unknown key is a no-op.
func (s *Scale) RemovePerspective(key PerspectiveKey) {
	for i, p := range s.perspectives {
		if p.key == key {
			s.perspectives = append(s.perspectives[:i:i], s.perspectives[i+1:]...)
			s.forget(p)
			s.Refresh()
			return
		}
	}
}

// HasPerspective reports whether key is registered with s.
func (s *Scale) HasPerspective(key PerspectiveKey) bool {
	for _, p := range s.perspectives {
		if p.key == key {
			return true
		}
	}
	return false
}

// forget drops p's cached extent unless another perspective still
// uses the same dataset and accessor.
func (s *Scale) forget(p perspective) {
	for _, q := range s.perspectives {
		if q.ds == p.ds && q.acc == p.acc {
			return
		}
	}
	p.ds.ForgetExtent(p.acc)
}
