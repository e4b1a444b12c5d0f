// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface is a retained drawing tree that components render
// into and that serializes to SVG.
//
// Each Node has an origin relative to its parent, a size, an optional
// class name, a list of drawing operations in its own coordinate
// space, and child Nodes drawn after its own operations, in order.
package surface

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// An OpKind identifies a drawing primitive.
type OpKind int

const (
	OpRect OpKind = iota
	OpLine
	OpPath
	OpCircle
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpRect:
		return "rect"
	case OpLine:
		return "line"
	case OpPath:
		return "path"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// An Op is one drawing primitive recorded on a Node.
//
// The meaning of Args depends on Kind: x, y, w, h for OpRect; x1, y1,
// x2, y2 for OpLine; alternating x, y vertex coordinates for OpPath;
// cx, cy, r for OpCircle; x, y for OpText.
type Op struct {
	Kind  OpKind
	Args  []float64
	Text  string
	Style string
}

// A Node is one element of the drawing tree.
type Node struct {
	parent   *Node
	children []*Node

	class      string
	x, y, w, h float64
	ops        []Op
}

// NewRoot returns a root Node of the given size.
func NewRoot(w, h float64) *Node {
	return &Node{class: "root", w: w, h: h}
}

// NewChild appends a new child Node to n. Children draw over their
// earlier siblings.
func (n *Node) NewChild(class string) *Node {
	c := &Node{parent: n, class: class}
	n.children = append(n.children, c)
	return c
}

// Remove detaches n from its parent. Removing a root is a no-op.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns n's parent, or nil if n is a root or was removed.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the root of the tree containing n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Children returns n's children in drawing order.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Class() string {
	return n.class
}

func (n *Node) SetClass(class string) {
	n.class = class
}

// Translate sets n's origin relative to its parent.
func (n *Node) Translate(x, y float64) {
	n.x, n.y = x, y
}

// Origin returns n's origin relative to its parent.
func (n *Node) Origin() (x, y float64) {
	return n.x, n.y
}

// AbsOrigin returns n's origin relative to the root.
func (n *Node) AbsOrigin() (x, y float64) {
	for ; n != nil; n = n.parent {
		x += n.x
		y += n.y
	}
	return
}

func (n *Node) Resize(w, h float64) {
	n.w, n.h = w, h
}

func (n *Node) Size() (w, h float64) {
	return n.w, n.h
}

// Clear drops n's drawing operations. Children are unaffected.
func (n *Node) Clear() {
	n.ops = nil
}

// Ops returns n's drawing operations.
func (n *Node) Ops() []Op {
	return n.ops
}

// Count returns the number of operations of kind k in the subtree
// rooted at n.
func (n *Node) Count(k OpKind) int {
	c := 0
	for _, op := range n.ops {
		if op.Kind == k {
			c++
		}
	}
	for _, ch := range n.children {
		c += ch.Count(k)
	}
	return c
}

func (n *Node) Rect(x, y, w, h float64, style string) {
	n.ops = append(n.ops, Op{Kind: OpRect, Args: []float64{x, y, w, h}, Style: style})
}

func (n *Node) Line(x1, y1, x2, y2 float64, style string) {
	n.ops = append(n.ops, Op{Kind: OpLine, Args: []float64{x1, y1, x2, y2}, Style: style})
}

// Polyline records an open path through the given vertices. Vertices
// with NaN coordinates break the path.
func (n *Node) Polyline(xs, ys []float64, style string) {
	args := make([]float64, 0, 2*len(xs))
	for i := range xs {
		args = append(args, xs[i], ys[i])
	}
	n.ops = append(n.ops, Op{Kind: OpPath, Args: args, Style: style})
}

func (n *Node) Circle(cx, cy, r float64, style string) {
	n.ops = append(n.ops, Op{Kind: OpCircle, Args: []float64{cx, cy, r}, Style: style})
}

// Text records a string whose anchor point is (x, y). Alignment is
// controlled through style, e.g. "text-anchor:middle".
func (n *Node) Text(x, y float64, s, style string) {
	n.ops = append(n.ops, Op{Kind: OpText, Args: []float64{x, y}, Text: s, Style: style})
}

// WriteSVG writes the tree rooted at n as a standalone SVG document
// whose size is n's size.
func (n *Node) WriteSVG(w io.Writer, fontSize float64) error {
	bw := bufio.NewWriter(w)
	s := svg.New(bw)
	s.Start(round(n.w), round(n.h), fmt.Sprintf(`font-size="%.6gpx" font-family="Roboto,&quot;Helvetica Neue&quot;,Helvetica,Arial,sans-serif"`, fontSize))
	n.write(s)
	s.End()
	return bw.Flush()
}

func (n *Node) write(s *svg.SVG) {
	attrs := []string{}
	if n.class != "" {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, n.class))
	}
	if n.x != 0 || n.y != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="translate(%.6g,%.6g)"`, n.x, n.y))
	}
	s.Group(attrs...)
	for _, op := range n.ops {
		op.write(s)
	}
	for _, c := range n.children {
		c.write(s)
	}
	s.Gend()
}

func (op Op) write(s *svg.SVG) {
	var style []string
	if op.Style != "" {
		style = []string{op.Style}
	}
	a := op.Args
	switch op.Kind {
	case OpRect:
		s.Path(fmt.Sprintf("M%.6g %.6gh%.6gv%.6gh%.6gz", a[0], a[1], a[2], a[3], -a[2]), style...)
	case OpLine:
		s.Path(fmt.Sprintf("M%.6g %.6gL%.6g %.6g", a[0], a[1], a[2], a[3]), style...)
	case OpPath:
		if d := pathData(a); d != "" {
			s.Path(d, style...)
		}
	case OpCircle:
		s.Circle(round(a[0]), round(a[1]), round(a[2]), style...)
	case OpText:
		s.Text(round(a[0]), round(a[1]), op.Text, style...)
	}
}

// pathData returns SVG path data for alternating x, y coordinates,
// starting a new subpath after every NaN vertex.
func pathData(xy []float64) string {
	var b strings.Builder
	move := true
	for i := 0; i+1 < len(xy); i += 2 {
		x, y := xy[i], xy[i+1]
		if math.IsNaN(x) || math.IsNaN(y) {
			move = true
			continue
		}
		cmd := "L"
		if move {
			cmd, move = "M", false
		}
		fmt.Fprintf(&b, "%s%.6g %.6g", cmd, x, y)
	}
	return b.String()
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
