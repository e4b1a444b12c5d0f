// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"image/color"
	"math"
	"time"

	"github.com/aclements/go-gg/palette"
	mscale "github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-plotkit/dataset"
)

// A Domain is the input space of a Scale. Quantitative scales use
// the interval [Lo, Hi]; categorical scales use Values, in order.
type Domain struct {
	Lo, Hi float64
	Values []interface{}

	index map[interface{}]int
}

// IndexOf returns the position of x in a categorical domain.
func (d *Domain) IndexOf(x interface{}) (int, bool) {
	if d.index == nil {
		d.index = make(map[interface{}]int, len(d.Values))
		for i, v := range d.Values {
			if _, ok := d.index[v]; !ok {
				d.index[v] = i
			}
		}
	}
	i, ok := d.index[x]
	return i, ok
}

func (d *Domain) equal(o *Domain) bool {
	if d.Lo != o.Lo || d.Hi != o.Hi || len(d.Values) != len(o.Values) {
		return false
	}
	for i, v := range d.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}

// A Mapping is the strategy a Scale delegates to for turning domain
// values into range values.
//
// Quantitative mappings must be monotonic. Categorical mappings must
// be a stable injective lookup of the domain's Values.
type Mapping interface {
	// Categorical reports whether this mapping uses Domain.Values
	// rather than Domain.Lo and Domain.Hi.
	Categorical() bool

	// Map maps x from d to the range [r[0], r[1]]. The result is
	// usually a float64, but may be another visual type such as a
	// color.Color. ok is false if x cannot be mapped.
	Map(x interface{}, d *Domain, r [2]float64) (y interface{}, ok bool)

	// Invert maps a range position back to a domain value.
	Invert(y float64, d *Domain, r [2]float64) interface{}

	// Ticks returns up to max representative domain values.
	Ticks(d *Domain, max int) []interface{}

	// Nice expands d to round values.
	Nice(d *Domain, max int)

	// Pad expands d by proportion p of its span.
	Pad(d *Domain, p float64)

	// Default returns the domain to use when no data is known.
	Default() Domain

	// Value converts a quantitative bound back to the domain's
	// value type.
	Value(f float64) interface{}
}

func lerp(r [2]float64, t float64) float64 {
	return r[0] + t*(r[1]-r[0])
}

func unlerp(r [2]float64, y float64) float64 {
	if r[0] == r[1] {
		return 0.5
	}
	return (y - r[0]) / (r[1] - r[0])
}

// Linear is a continuous linear mapping.
type Linear struct{}

func (Linear) Categorical() bool { return false }

func (Linear) linear(d *Domain) mscale.Linear {
	return mscale.Linear{Min: d.Lo, Max: d.Hi, Base: 10}
}

func (m Linear) Map(x interface{}, d *Domain, r [2]float64) (interface{}, bool) {
	v, ok := dataset.Float(x)
	if !ok {
		return math.NaN(), false
	}
	if d.Lo == d.Hi {
		return lerp(r, 0.5), true
	}
	return lerp(r, m.linear(d).Map(v)), true
}

func (m Linear) Invert(y float64, d *Domain, r [2]float64) interface{} {
	return m.linear(d).Unmap(unlerp(r, y))
}

func (m Linear) ticks(d *Domain, max int) []float64 {
	if max < 1 || d.Lo == d.Hi {
		return []float64{d.Lo}
	}
	ls := m.linear(d)
	if ls.Min > ls.Max {
		ls.Min, ls.Max = ls.Max, ls.Min
	}
	major, _ := ls.Ticks(mscale.TickOptions{Max: max})
	return major
}

func (m Linear) Ticks(d *Domain, max int) []interface{} {
	return floats(m.ticks(d, max), m.Value)
}

func (m Linear) Nice(d *Domain, max int) {
	if d.Lo == d.Hi || max < 1 {
		return
	}
	ls := m.linear(d)
	rev := ls.Min > ls.Max
	if rev {
		ls.Min, ls.Max = ls.Max, ls.Min
	}
	ls.Nice(mscale.TickOptions{Max: max})
	if rev {
		ls.Min, ls.Max = ls.Max, ls.Min
	}
	d.Lo, d.Hi = ls.Min, ls.Max
}

func (Linear) Pad(d *Domain, p float64) {
	if d.Lo == d.Hi {
		d.Lo, d.Hi = d.Lo-1, d.Hi+1
		return
	}
	pad := (d.Hi - d.Lo) * p / 2
	d.Lo, d.Hi = d.Lo-pad, d.Hi+pad
}

func (Linear) Default() Domain { return Domain{Lo: 0, Hi: 1} }

func (Linear) Value(f float64) interface{} { return f }

func floats(xs []float64, conv func(float64) interface{}) []interface{} {
	res := make([]interface{}, len(xs))
	for i, x := range xs {
		res[i] = conv(x)
	}
	return res
}

// Log is a logarithmic mapping. The domain must be strictly
// positive; values outside it map to NaN.
type Log struct {
	Base int
}

func (Log) Categorical() bool { return false }

func (m Log) base() int {
	if m.Base < 2 {
		return 10
	}
	return m.Base
}

func (m Log) log(d *Domain) (mscale.Log, bool) {
	lo, hi := d.Lo, d.Hi
	if lo > hi {
		lo, hi = hi, lo
	}
	l, err := mscale.NewLog(lo, hi, m.base())
	return l, err == nil
}

func (m Log) Map(x interface{}, d *Domain, r [2]float64) (interface{}, bool) {
	v, ok := dataset.Float(x)
	if !ok || v <= 0 {
		return math.NaN(), false
	}
	if d.Lo == d.Hi {
		return lerp(r, 0.5), true
	}
	l, ok := m.log(d)
	if !ok {
		return math.NaN(), false
	}
	t := l.Map(v)
	if d.Lo > d.Hi {
		t = 1 - t
	}
	return lerp(r, t), true
}

func (m Log) Invert(y float64, d *Domain, r [2]float64) interface{} {
	l, ok := m.log(d)
	if !ok {
		return math.NaN()
	}
	t := unlerp(r, y)
	if d.Lo > d.Hi {
		t = 1 - t
	}
	return l.Unmap(t)
}

func (m Log) Ticks(d *Domain, max int) []interface{} {
	l, ok := m.log(d)
	if !ok || max < 1 {
		return nil
	}
	major, _ := l.Ticks(mscale.TickOptions{Max: max})
	return floats(major, m.Value)
}

func (m Log) Nice(d *Domain, max int) {
	l, ok := m.log(d)
	if !ok || max < 1 || d.Lo == d.Hi {
		return
	}
	l.Nice(mscale.TickOptions{Max: max})
	lo, hi := l.Unmap(0), l.Unmap(1)
	if d.Lo > d.Hi {
		lo, hi = hi, lo
	}
	d.Lo, d.Hi = lo, hi
}

func (m Log) Pad(d *Domain, p float64) {
	if d.Lo <= 0 || d.Hi <= 0 {
		return
	}
	b := math.Log(float64(m.base()))
	lo, hi := math.Log(d.Lo)/b, math.Log(d.Hi)/b
	if lo == hi {
		lo, hi = lo-1, hi+1
	} else {
		pad := (hi - lo) * p / 2
		lo, hi = lo-pad, hi+pad
	}
	d.Lo, d.Hi = math.Exp(lo*b), math.Exp(hi*b)
}

func (Log) Default() Domain { return Domain{Lo: 1, Hi: 10} }

func (Log) Value(f float64) interface{} { return f }

// Time is a linear mapping over time.Time values.
type Time struct {
	Linear
}

func (Time) Value(f float64) interface{} {
	return time.Unix(0, int64(f))
}

func (m Time) Ticks(d *Domain, max int) []interface{} {
	return floats(m.ticks(d, max), m.Value)
}

func (m Time) Pad(d *Domain, p float64) {
	if d.Lo == d.Hi {
		day := float64(24 * time.Hour)
		d.Lo, d.Hi = d.Lo-day, d.Hi+day
		return
	}
	m.Linear.Pad(d, p)
}

func (m Time) Invert(y float64, d *Domain, r [2]float64) interface{} {
	return m.Value(m.Linear.Invert(y, d, r).(float64))
}

func (Time) Default() Domain {
	now := float64(time.Now().Truncate(24 * time.Hour).UnixNano())
	return Domain{Lo: now, Hi: now + float64(24*time.Hour)}
}

// Band maps each categorical value to the center of an equal-width
// band of the range.
type Band struct{}

func (Band) Categorical() bool { return true }

func (Band) Map(x interface{}, d *Domain, r [2]float64) (interface{}, bool) {
	i, ok := d.IndexOf(x)
	if !ok {
		return math.NaN(), false
	}
	n := float64(len(d.Values))
	return lerp(r, (float64(i)+0.5)/n), true
}

func (Band) Invert(y float64, d *Domain, r [2]float64) interface{} {
	if len(d.Values) == 0 {
		return nil
	}
	i := int(math.Floor(unlerp(r, y) * float64(len(d.Values))))
	if i < 0 {
		i = 0
	} else if i >= len(d.Values) {
		i = len(d.Values) - 1
	}
	return d.Values[i]
}

func (Band) Ticks(d *Domain, max int) []interface{} {
	return append([]interface{}(nil), d.Values...)
}

func (Band) Nice(*Domain, int)           {}
func (Band) Pad(*Domain, float64)        {}
func (Band) Default() Domain             { return Domain{} }
func (Band) Value(f float64) interface{} { return f }

// Bandwidth returns the width of one band of a categorical domain
// with n values over range r.
func Bandwidth(n int, r [2]float64) float64 {
	if n == 0 {
		return 0
	}
	return math.Abs(r[1]-r[0]) / float64(n)
}

// Gradient maps a quantitative domain onto a continuous color
// palette. The range is ignored.
type Gradient struct {
	Linear
	Palette palette.Continuous
}

func (m Gradient) Map(x interface{}, d *Domain, _ [2]float64) (interface{}, bool) {
	t, ok := m.Linear.Map(x, d, [2]float64{0, 1})
	if !ok {
		return color.Transparent, false
	}
	f := t.(float64)
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	p := m.Palette
	if p == nil {
		p = palette.Viridis
	}
	return p.Map(f), true
}

// DefaultColors is the categorical palette used by Palette when none
// is given.
var DefaultColors = []color.Color{
	color.RGBA{0x4c, 0x72, 0xb0, 0xff},
	color.RGBA{0x55, 0xa8, 0x68, 0xff},
	color.RGBA{0xc4, 0x4e, 0x52, 0xff},
	color.RGBA{0x81, 0x72, 0xb2, 0xff},
	color.RGBA{0xcc, 0xb9, 0x74, 0xff},
	color.RGBA{0x64, 0xb5, 0xcd, 0xff},
}

// Palette maps categorical values to colors, cycling through Colors
// if there are more values than colors. The range is ignored.
type Palette struct {
	Band
	Colors []color.Color
}

func (m Palette) Map(x interface{}, d *Domain, _ [2]float64) (interface{}, bool) {
	colors := m.Colors
	if len(colors) == 0 {
		colors = DefaultColors
	}
	i, ok := d.IndexOf(x)
	if !ok {
		return color.Transparent, false
	}
	return colors[i%len(colors)], true
}
