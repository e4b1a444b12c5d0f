// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guide

import (
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aclements/go-plotkit/component"
	"github.com/aclements/go-plotkit/dataset"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/scale"
	"github.com/aclements/go-plotkit/surface"
	"github.com/google/go-cmp/cmp"
)

// fixedFont is a monospace font with w-wide, h-tall characters.
type fixedFont struct{ w, h float64 }

func (f fixedFont) MeasureString(s string) (float64, float64) {
	return f.w * float64(utf8.RuneCountInString(s)), f.h
}

var testFont = fixedFont{6, 10}

func TestFaceFont(t *testing.T) {
	w, h := DefaultFont.MeasureString("abc")
	if w != 21 || h != 13 {
		t.Errorf("MeasureString(abc) = %v, %v; want 21, 13", w, h)
	}
}

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		in   interface{}
		want string
	}{
		{0.1 + 0.2, "0.3"},
		{1e6, "1e+06"},
		{3, "3"},
		{"x", "x"},
		{time.Date(2016, 3, 4, 5, 6, 0, 0, time.UTC), "2016-03-04 05:06"},
	} {
		if got := Format(test.in); got != test.want {
			t.Errorf("Format(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestParseOrient(t *testing.T) {
	for o := Bottom; o <= Right; o++ {
		if got, err := ParseOrient(o.String()); err != nil || got != o {
			t.Errorf("ParseOrient(%q) = %v, %v", o, got, err)
		}
	}
	if _, err := ParseOrient("middle"); err == nil {
		t.Errorf("ParseOrient(middle) succeeded")
	}
}

func newAxis(t *testing.T, sched *render.Scheduler, s *scale.Scale, o Orient) *Axis {
	t.Helper()
	a, err := NewAxis(sched, s, o)
	if err != nil {
		t.Fatal(err)
	}
	return a.SetFont(testFont)
}

func TestAxisRequest(t *testing.T) {
	s := scale.NewLinear()
	s.SetDomain(0, 10)
	want := component.Request{Width: 5 + padding + 12, WantsHeight: true}
	if diff := cmp.Diff(want, newAxis(t, nil, s, Left).RequestedSpace(100, 100)); diff != "" {
		t.Errorf("left axis (-want +got):\n%s", diff)
	}
	want = component.Request{Height: 5 + padding + 10, WantsWidth: true}
	if diff := cmp.Diff(want, newAxis(t, nil, s, Bottom).RequestedSpace(100, 100)); diff != "" {
		t.Errorf("bottom axis (-want +got):\n%s", diff)
	}
	if _, err := NewAxis(nil, nil, Left); !errors.Is(err, plot.ErrMissingScale) {
		t.Errorf("NewAxis(nil scale) = %v, want ErrMissingScale", err)
	}
}

func TestChartLayout(t *testing.T) {
	d := dataset.New(
		map[string]interface{}{"x": 1, "y": 2},
		map[string]interface{}{"x": 9, "y": 8},
	)
	xs, ys := scale.NewLinear(), scale.NewLinear()
	xs.SetDomain(0, 10)
	ys.SetDomain(0, 10)
	p, err := plot.NewXY(nil, plot.Scatter{}, d, dataset.Field("x"), xs, dataset.Field("y"), ys)
	if err != nil {
		t.Fatal(err)
	}
	title := NewLabel(nil, "Title").SetFont(testFont)
	yAxis := newAxis(t, nil, ys, Left)
	xAxis := newAxis(t, nil, xs, Bottom)
	tbl, err := component.NewTable(nil,
		[]component.Component{nil, title},
		[]component.Component{yAxis, p},
		[]component.Component{nil, xAxis},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := component.RenderTo(tbl, surface.NewRoot(400, 300)); err != nil {
		t.Fatal(err)
	}

	x, y, w, h := p.Bounds()
	if diff := cmp.Diff([4]float64{21, 18, 379, 263}, [4]float64{x, y, w, h}); diff != "" {
		t.Errorf("plot bounds (-want +got):\n%s", diff)
	}
	if r0, r1 := xs.Range(); r0 != 0 || r1 != 379 {
		t.Errorf("x range is [%v,%v], want [0,379]", r0, r1)
	}
	if r0, r1 := ys.Range(); r0 != 263 || r1 != 0 {
		t.Errorf("y range is [%v,%v], want [263,0]", r0, r1)
	}

	n := xAxis.Node()
	labels := n.Count(surface.OpText)
	if labels < 3 {
		t.Errorf("x axis drew %d labels", labels)
	}
	for _, op := range n.Ops() {
		if op.Kind == surface.OpText && (op.Args[0] < 0 || op.Args[0] > 379) {
			t.Errorf("x axis label %q at %v is outside the axis", op.Text, op.Args[0])
		}
	}
	if p.Node().Count(surface.OpCircle) != 2 {
		t.Errorf("plot drew %d points", p.Node().Count(surface.OpCircle))
	}
}

func TestAxisGrowthCascades(t *testing.T) {
	var frames render.ManualFrames
	sched := render.NewScheduler(&frames)
	ys := scale.NewLinear()
	ys.SetDomain(0, 10)
	yAxis := newAxis(t, sched, ys, Left)
	body := NewLabel(sched, "")
	tbl, _ := component.NewTable(sched, []component.Component{yAxis, body})
	tbl.SetColumnWeight(1, 1)
	if err := tbl.Anchor(surface.NewRoot(200, 100)); err != nil {
		t.Fatal(err)
	}
	tbl.Invalidate()
	frames.Step()
	if got := tbl.ColumnWidths()[0]; got != 21 {
		t.Fatalf("axis column is %v wide, want 21", got)
	}

	ys.SetDomain(0, 100000)
	frames.Step()
	if got := tbl.ColumnWidths()[0]; got != 5+padding+36 {
		t.Errorf("axis column is %v wide after domain change, want %v", got, 5+padding+36)
	}
	if frames.Pending() != 0 {
		t.Errorf("growth needed another frame")
	}

	yAxis.Detach()
	if ys.Broadcaster().Has(yAxis.Key()) {
		t.Errorf("detached axis still listens to its scale")
	}
}

func TestLegend(t *testing.T) {
	cs := scale.NewColor()
	cs.SetDomain("a", "bb", "ccc")
	l, err := NewLegend(nil, cs)
	if err != nil {
		t.Fatal(err)
	}
	l.font = testFont
	want := component.Request{Width: padding + 10 + padding + 18 + padding, Height: 3*(10+padding) + padding}
	if diff := cmp.Diff(want, l.RequestedSpace(100, 100)); diff != "" {
		t.Errorf("legend request (-want +got):\n%s", diff)
	}
	if err := component.RenderTo(l, surface.NewRoot(100, 100)); err != nil {
		t.Fatal(err)
	}
	ops := l.Node().Ops()
	if len(ops) != 6 || ops[0].Style != "fill:#4c72b0" || ops[5].Text != "ccc" {
		t.Errorf("legend drew %+v", ops)
	}

	// The legend follows its scale.
	cs.SetDomain("a")
	if got := l.Node().Count(surface.OpRect); got != 1 {
		t.Errorf("legend drew %d swatches after the domain shrank", got)
	}

	if _, err := NewLegend(nil, scale.NewLinear()); err == nil {
		t.Errorf("legend of a linear scale succeeded")
	}
}

func TestLabel(t *testing.T) {
	l := NewLabel(nil, "").SetFont(testFont)
	if diff := cmp.Diff(component.Request{}, l.RequestedSpace(50, 50)); diff != "" {
		t.Errorf("empty label request (-want +got):\n%s", diff)
	}
	l.SetText("abc")
	want := component.Request{Width: 18 + 2*padding, Height: 10 + 2*padding}
	if diff := cmp.Diff(want, l.RequestedSpace(50, 50)); diff != "" {
		t.Errorf("label request (-want +got):\n%s", diff)
	}
}
