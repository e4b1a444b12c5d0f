// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aclements/go-plotkit/component"
	"github.com/aclements/go-plotkit/dataset"
	"github.com/aclements/go-plotkit/guide"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/scale"
	"github.com/aclements/go-plotkit/surface"
	"gopkg.in/yaml.v3"
)

// Chart is the YAML description of a chart.
type Chart struct {
	Title  string   `yaml:"title"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	X      Axis     `yaml:"x"`
	Y      Axis     `yaml:"y"`
	Legend *bool    `yaml:"legend"`
	Series []Series `yaml:"series"`
}

// Axis describes the scale of one position channel.
type Axis struct {
	// Scale is linear (the default), log, time or band.
	Scale string `yaml:"scale"`
	// Base is the base of a log scale.
	Base int `yaml:"base"`
	// Field is the record field plotted on this axis. It defaults
	// to the channel name.
	Field string `yaml:"field"`
	// Domain, if set, fixes the scale's domain.
	Domain []interface{} `yaml:"domain"`
	// Orient is the side of the plot the axis is drawn on.
	Orient string `yaml:"orient"`
	// Hide suppresses the axis.
	Hide bool `yaml:"hide"`
}

// Series is one plotted dataset.
type Series struct {
	Name string                   `yaml:"name"`
	Kind string                   `yaml:"kind"`
	Data []map[string]interface{} `yaml:"data"`
}

const (
	defaultWidth  = 640
	defaultHeight = 400
)

func parseChart(r io.Reader) (*Chart, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Chart
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if len(c.Series) == 0 {
		return nil, fmt.Errorf("chart has no series")
	}
	return c.normalize(), nil
}

func (c *Chart) normalize() *Chart {
	if c.X.Field == "" {
		c.X.Field = "x"
	}
	if c.Y.Field == "" {
		c.Y.Field = "y"
	}
	if c.X.Orient == "" {
		c.X.Orient = "bottom"
	}
	if c.Y.Orient == "" {
		c.Y.Orient = "left"
	}
	for i := range c.Series {
		if c.Series[i].Name == "" {
			c.Series[i].Name = fmt.Sprintf("series %d", i+1)
		}
		if c.Series[i].Kind == "" {
			c.Series[i].Kind = "line"
		}
	}
	return c
}

func (a *Axis) newScale() (*scale.Scale, error) {
	var s *scale.Scale
	switch a.Scale {
	case "", "linear":
		s = scale.NewLinear()
	case "log":
		base := a.Base
		if base == 0 {
			base = 10
		}
		s = scale.NewLog(base)
	case "time":
		s = scale.NewTime()
	case "band":
		s = scale.NewBand()
	default:
		return nil, fmt.Errorf("unknown scale %q", a.Scale)
	}
	if len(a.Domain) > 0 {
		dom := a.Domain
		if a.Scale == "time" {
			dom = make([]interface{}, len(a.Domain))
			for i, v := range a.Domain {
				dom[i] = parseTime(v)
			}
		}
		if err := s.SetDomain(dom...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// accessor returns the accessor of a's field. Time fields may be
// given as RFC 3339 strings.
func (a *Axis) accessor() *dataset.Accessor {
	f := dataset.Field(a.Field)
	if a.Scale != "time" {
		return f
	}
	return dataset.NewAccessor(func(d interface{}, i int) interface{} {
		return parseTime(f.Get(d, i))
	})
}

func parseTime(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return v
	}
	return t
}

// Table rows of a chart.
const (
	rowTitle = iota
	rowTop
	rowPlots
	rowBottom
	rowLegend
)

// build returns the chart's root component, a table of the form
//
//	[      , title , ]
//	[      , x     , ]
//	[ y    , plots , y ]
//	[      , x     , ]
//	[      , legend, ]
//
// where only one of each pair of axis cells is used.
func (c *Chart) build(sched *render.Scheduler) (*component.Table, error) {
	xs, err := c.X.newScale()
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	ys, err := c.Y.newScale()
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}

	names := make([]interface{}, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	colors := scale.NewColor()
	if err := colors.SetDomain(names...); err != nil {
		return nil, err
	}

	plots, err := component.NewGroup(sched)
	if err != nil {
		return nil, err
	}
	xAcc, yAcc := c.X.accessor(), c.Y.accessor()
	for _, s := range c.Series {
		kind, err := plot.KindByName(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		data := make([]interface{}, len(s.Data))
		for i, d := range s.Data {
			data[i] = d
		}
		p, err := plot.NewXY(sched, kind, dataset.New(data...), xAcc, xs, yAcc, ys)
		if err != nil {
			return nil, err
		}
		name := dataset.Const(s.Name)
		p.Project("fill", name, colors).Project("stroke", name, colors)
		if err := plots.Append(p); err != nil {
			return nil, err
		}
	}

	tbl, err := component.NewTable(sched)
	if err != nil {
		return nil, err
	}
	add := func(comp component.Component, row, col int) {
		if err == nil {
			err = tbl.Add(comp, row, col)
		}
	}
	add(plots, rowPlots, 1)
	if c.Title != "" {
		add(guide.NewLabel(sched, c.Title), rowTitle, 1)
	}
	for _, ax := range []struct {
		a *Axis
		s *scale.Scale
	}{{&c.X, xs}, {&c.Y, ys}} {
		if ax.a.Hide {
			continue
		}
		o, perr := guide.ParseOrient(ax.a.Orient)
		if perr != nil {
			return nil, perr
		}
		a, aerr := guide.NewAxis(sched, ax.s, o)
		if aerr != nil {
			return nil, aerr
		}
		switch o {
		case guide.Top:
			add(a, rowTop, 1)
		case guide.Bottom:
			add(a, rowBottom, 1)
		case guide.Left:
			add(a, rowPlots, 0)
		case guide.Right:
			add(a, rowPlots, 2)
		}
	}
	if c.Legend == nil && len(c.Series) > 1 || c.Legend != nil && *c.Legend {
		l, lerr := guide.NewLegend(sched, colors)
		if lerr != nil {
			return nil, lerr
		}
		add(l, rowLegend, 1)
	}
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// renderChart lays out and draws c and writes it to w as SVG.
func renderChart(c *Chart, w io.Writer) error {
	var frames render.ManualFrames
	sched := render.NewScheduler(&frames)
	var errs []error
	sched.OnError = func(err error) { errs = append(errs, err) }

	root, err := c.build(sched)
	if err != nil {
		return err
	}
	n := surface.NewRoot(c.Width, c.Height)
	if err := root.Anchor(n); err != nil {
		return err
	}
	root.Invalidate()
	for frames.Step() > 0 {
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return n.WriteSVG(w, guide.FontSize)
}
