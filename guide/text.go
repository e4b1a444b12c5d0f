// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guide provides components that explain a chart: axes,
// legends and titles.
//
// Guides size themselves from their text, so their requested space
// depends on the current state of the scales they describe. They
// listen to those scales and lay themselves out again when they
// change.
package guide

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// A Font measures text.
type Font interface {
	// MeasureString returns the width and height of s rendered on
	// one line.
	MeasureString(s string) (width, height float64)
}

// FaceFont measures text with a font.Face.
type FaceFont struct {
	Face font.Face
}

func (f FaceFont) MeasureString(s string) (width, height float64) {
	adv := font.MeasureString(f.Face, s)
	m := f.Face.Metrics()
	return float64(adv.Ceil()), float64(m.Height.Ceil())
}

// DefaultFont is the font guides measure with unless given another.
// Its metrics match a 13px fixed-width face.
var DefaultFont Font = FaceFont{basicfont.Face7x13}

// FontSize is the font size, in pixels, that DefaultFont's metrics
// correspond to. SVG output should use it.
const FontSize = 12

// Format formats a tick or legend value.
func Format(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', 6, 64)
	case time.Time:
		return v.Format("2006-01-02 15:04")
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// padding is the space around guide text.
const padding = 4
