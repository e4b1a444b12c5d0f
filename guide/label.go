// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guide

import (
	"github.com/aclements/go-plotkit/component"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/surface"
)

// Label is a line of text, such as a chart title. It asks for exactly
// the space of its text.
type Label struct {
	component.Base
	text string
	font Font
}

func NewLabel(sched *render.Scheduler, text string) *Label {
	l := &Label{text: text, font: DefaultFont}
	l.Init(l, sched, "label")
	return l
}

func (l *Label) Text() string {
	return l.text
}

// SetText changes the text. The label's size follows it.
func (l *Label) SetText(text string) *Label {
	l.text = text
	l.Invalidate()
	return l
}

func (l *Label) SetFont(f Font) *Label {
	l.font = f
	l.Invalidate()
	return l
}

func (l *Label) RequestedSpace(w, h float64) component.Request {
	if l.text == "" {
		return component.Request{}
	}
	tw, th := l.font.MeasureString(l.text)
	return component.Request{Width: tw + 2*padding, Height: th + 2*padding}
}

func (l *Label) Draw(n *surface.Node, w, h float64) error {
	if l.text == "" {
		return nil
	}
	_, th := l.font.MeasureString(l.text)
	n.Text(w/2, padding+th*0.75, l.text, "text-anchor:middle;font-weight:bold")
	return nil
}
