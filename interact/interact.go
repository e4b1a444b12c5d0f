// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact changes scale domains in response to user input.
//
// Everything here works by setting the domain of a quantitative
// scale. The scale broadcasts the change and the components that
// draw with it redraw on the next frame.
package interact

import (
	"fmt"

	"github.com/aclements/go-plotkit/dataset"
	"github.com/aclements/go-plotkit/render"
	"github.com/aclements/go-plotkit/scale"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

func quantitative(s *scale.Scale) error {
	if s.Categorical() {
		return fmt.Errorf("scale %v is categorical", s)
	}
	return nil
}

// Pan moves s's domain so the data drawn at pixel p is drawn at p+d.
func Pan(s *scale.Scale, d float64) error {
	if err := quantitative(s); err != nil {
		return err
	}
	r0, r1 := s.Range()
	return s.SetDomain(s.Invert(r0-d), s.Invert(r1-d))
}

// Zoom magnifies s's domain by factor around pixel center. A factor
// greater than 1 zooms in.
func Zoom(s *scale.Scale, factor, center float64) error {
	if err := quantitative(s); err != nil {
		return err
	}
	if !(factor > 0) {
		return fmt.Errorf("zoom factor %v is not positive", factor)
	}
	r0, r1 := s.Range()
	p0 := center + (r0-center)/factor
	p1 := center + (r1-center)/factor
	return s.SetDomain(s.Invert(p0), s.Invert(p1))
}

// DomainTween animates a scale's domain from its current bounds to
// new ones. Call Update each frame.
type DomainTween struct {
	s        *scale.Scale
	from, to [2]float64
	frac     *gween.Tween
	done     bool
}

// NewDomainTween returns a tween that moves s's domain to [lo, hi]
// over duration seconds, eased by fn. If fn is nil, the motion is
// linear.
func NewDomainTween(s *scale.Scale, lo, hi interface{}, duration float32, fn ease.TweenFunc) (*DomainTween, error) {
	if err := quantitative(s); err != nil {
		return nil, err
	}
	l, ok1 := dataset.Float(lo)
	h, ok2 := dataset.Float(hi)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("tween target [%v,%v] is not numeric", lo, hi)
	}
	m := s.Mapping()
	if !dataset.IsNumeric(m.Value(l)) || !dataset.IsNumeric(m.Value(h)) {
		return nil, fmt.Errorf("scale %v cannot represent domain [%v,%v]", s, lo, hi)
	}
	if fn == nil {
		fn = ease.Linear
	}
	t := &DomainTween{s: s, to: [2]float64{l, h}}
	t.from[0], t.from[1] = s.Bounds()
	// The eased quantity is the fraction of the way to the target,
	// so large domains keep full precision.
	t.frac = gween.New(0, 1, duration, fn)
	return t, nil
}

// Update advances the tween by dt seconds and sets the scale's
// domain. It reports whether the tween has finished.
func (t *DomainTween) Update(dt float32) bool {
	if t.done {
		return true
	}
	f, finished := t.frac.Update(dt)
	if finished {
		f = 1
	}
	lo := t.from[0] + (t.to[0]-t.from[0])*float64(f)
	hi := t.from[1] + (t.to[1]-t.from[1])*float64(f)
	m := t.s.Mapping()
	if err := t.s.SetDomain(m.Value(lo), m.Value(hi)); err != nil {
		// NewDomainTween checked that the mapping yields numeric
		// bounds.
		panic(fmt.Sprintf("tweening %v: %v", t.s, err))
	}
	t.done = finished
	return finished
}

func (t *DomainTween) Done() bool {
	return t.done
}

// Animate updates t by dt seconds on every frame from frames until it
// finishes. The returned function stops the animation.
func Animate(frames render.FrameRequester, t *DomainTween, dt float32) (stop func()) {
	var cancel func()
	stopped := false
	var step func()
	step = func() {
		if stopped || t.Update(dt) {
			return
		}
		cancel = frames.RequestFrame(step)
	}
	cancel = frames.RequestFrame(step)
	return func() {
		stopped = true
		cancel()
	}
}
