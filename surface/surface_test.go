// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestTree(t *testing.T) {
	root := NewRoot(100, 50)
	a := root.NewChild("a")
	b := root.NewChild("b")
	c := a.NewChild("c")
	a.Translate(10, 5)
	c.Translate(1, 2)

	if x, y := c.AbsOrigin(); x != 11 || y != 7 {
		t.Errorf("AbsOrigin = (%v,%v), want (11,7)", x, y)
	}
	if c.Root() != root {
		t.Errorf("Root is not the root")
	}

	a.Remove()
	if a.Parent() != nil || len(root.Children()) != 1 || root.Children()[0] != b {
		t.Errorf("Remove did not detach the node")
	}
	a.Remove()
	root.Remove()
}

func TestCountAndClear(t *testing.T) {
	root := NewRoot(10, 10)
	ch := root.NewChild("")
	root.Rect(0, 0, 10, 10, "")
	ch.Circle(1, 1, 1, "")
	ch.Circle(2, 2, 1, "")
	if got := root.Count(OpCircle); got != 2 {
		t.Errorf("Count(circle) = %d, want 2", got)
	}
	ch.Clear()
	if got := root.Count(OpCircle); got != 0 {
		t.Errorf("Count(circle) after Clear = %d, want 0", got)
	}
	if got := root.Count(OpRect); got != 1 {
		t.Errorf("Clear affected the parent")
	}
}

func TestPathData(t *testing.T) {
	for _, test := range []struct {
		xy   []float64
		want string
	}{
		{nil, ""},
		{[]float64{0, 0, 1, 2}, "M0 0L1 2"},
		{[]float64{0, 0, math.NaN(), 1, 2, 2, 3, 3}, "M0 0M2 2L3 3"},
	} {
		if got := pathData(test.xy); got != test.want {
			t.Errorf("pathData(%v) = %q, want %q", test.xy, got, test.want)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	root := NewRoot(40, 30)
	plot := root.NewChild("plot")
	plot.Translate(5, 0)
	plot.Rect(0, 0, 10, 10, "fill:#eee")
	plot.Text(2, 3, "a<b", "text-anchor:middle")

	var buf bytes.Buffer
	if err := root.WriteSVG(&buf, 10); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="40"`,
		`height="30"`,
		`class="plot"`,
		`transform="translate(5,0)"`,
		`d="M0 0h10v10h-10z"`,
		`a&lt;b`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q:\n%s", want, out)
		}
	}
}
