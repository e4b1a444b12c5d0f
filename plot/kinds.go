// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"github.com/aclements/go-plotkit/dataset"
	"github.com/aclements/go-plotkit/surface"
)

// DefaultColor is the color of marks whose color is not projected.
const DefaultColor = "#4c72b0"

// KindByName returns the Kind called name: "scatter", "line" or
// "bar".
func KindByName(name string) (Kind, error) {
	switch name {
	case "scatter", "point":
		return Scatter{}, nil
	case "line":
		return Line{}, nil
	case "bar":
		return Bar{}, nil
	}
	return nil, fmt.Errorf("unknown plot kind %q", name)
}

// Scatter draws a circle at (x, y) for each datum, with radius "r"
// and color "fill".
type Scatter struct{}

func (Scatter) Class() string { return "scatter-plot" }

func (Scatter) Defaults() map[string]*dataset.Accessor {
	return map[string]*dataset.Accessor{
		"r":    dataset.Const(3.0),
		"fill": dataset.Const(DefaultColor),
	}
}

func (Scatter) Draw(n *surface.Node, v *Projected) error {
	for i := 0; i < v.N; i++ {
		x, y, r := v.Float("x", i), v.Float("y", i), v.Float("r", i)
		if math.IsNaN(x) || math.IsNaN(y) || !(r > 0) {
			continue
		}
		n.Circle(x, y, r, "fill:"+v.Color("fill", i))
	}
	return nil
}

// Line draws one path through (x, y) of every datum in order. Data
// whose position is undefined break the line.
type Line struct{}

func (Line) Class() string { return "line-plot" }

func (Line) Defaults() map[string]*dataset.Accessor {
	return map[string]*dataset.Accessor{
		"stroke":       dataset.Const(DefaultColor),
		"stroke-width": dataset.Const(2.0),
	}
}

func (Line) Draw(n *surface.Node, v *Projected) error {
	if v.N == 0 {
		return nil
	}
	xs, ys := make([]float64, v.N), make([]float64, v.N)
	for i := range xs {
		xs[i], ys[i] = v.Float("x", i), v.Float("y", i)
	}
	// Stroke attributes come from the first datum.
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.6g", v.Color("stroke", 0), v.Float("stroke-width", 0))
	n.Polyline(xs, ys, style)
	return nil
}

// Bar draws a bar from the baseline value 0 to y for each datum,
// centered at x. Bars are as wide as a band of a categorical x scale,
// less padding, or an equal share of the plot width otherwise.
type Bar struct{}

// BarPadding is the fraction of each band left empty between bars.
const BarPadding = 0.2

func (Bar) Class() string { return "bar-plot" }

func (Bar) Defaults() map[string]*dataset.Accessor {
	return map[string]*dataset.Accessor{
		"fill": dataset.Const(DefaultColor),
	}
}

// Includes makes y scales cover the baseline.
func (Bar) Includes() map[string][]interface{} {
	return map[string][]interface{}{"y": {0.0}}
}

func (Bar) Draw(n *surface.Node, v *Projected) error {
	if v.N == 0 {
		return nil
	}
	var width float64
	if xs := v.Scales["x"]; xs != nil && xs.Categorical() {
		width = xs.Bandwidth()
	} else {
		width = v.W / float64(v.N)
	}
	width *= 1 - BarPadding

	base := v.H
	if ys := v.Scales["y"]; ys != nil {
		if b := ys.MapFloat(0.0); !math.IsNaN(b) {
			base = math.Max(0, math.Min(v.H, b))
		}
	}
	for i := 0; i < v.N; i++ {
		x, y := v.Float("x", i), v.Float("y", i)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		n.Rect(x-width/2, math.Min(y, base), width, math.Abs(base-y), "fill:"+v.Color("fill", i))
	}
	return nil
}
