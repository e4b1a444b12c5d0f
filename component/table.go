// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package component

import (
	"errors"
	"fmt"

	"github.com/aclements/go-plotkit/render"
)

// Table lays out components in a two dimensional grid.
//
// Each row is as tall as the tallest request among its cells, and
// each column as wide as the widest. A row is flexible if any of its
// cells wants more height, and likewise for columns. Space left over
// after every row has its minimum is split among flexible rows in
// proportion to their weights, which default to 1. If no row is
// flexible, the leftover is split equally among all rows. If there is
// no leftover, every row gets exactly its minimum even when that
// overflows the table.
type Table struct {
	Base

	cells      [][]Component
	rows, cols int

	rowWeights, colWeights map[int]float64

	// Solution of the last ComputeLayout.
	heights, widths []float64
}

// NewTable returns a Table whose cells are given row by row. nil
// entries are empty cells.
func NewTable(sched *render.Scheduler, rows ...[]Component) (*Table, error) {
	t := &Table{}
	t.Init(t, sched, "table")
	for r, row := range rows {
		for c, comp := range row {
			if comp == nil {
				continue
			}
			if err := t.Add(comp, r, c); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Add places c in cell (row, col), growing the table as needed. It is
// an error if the cell is already occupied.
func (t *Table) Add(c Component, row, col int) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("table cell (%d,%d) out of range", row, col)
	}
	if t.At(row, col) != nil {
		return fmt.Errorf("table cell (%d,%d) is already occupied", row, col)
	}
	if err := adopt(&t.Base, c); err != nil {
		return err
	}
	if row >= t.rows {
		t.rows = row + 1
	}
	if col >= t.cols {
		t.cols = col + 1
	}
	for len(t.cells) < t.rows {
		t.cells = append(t.cells, nil)
	}
	for len(t.cells[row]) <= col {
		t.cells[row] = append(t.cells[row], nil)
	}
	t.cells[row][col] = c
	t.Invalidate()
	return nil
}

// Remove detaches c if it is in t. The table keeps its dimensions.
func (t *Table) Remove(c Component) {
	if c.base().parent == &t.Base {
		c.Detach()
	}
}

// At returns the component in cell (row, col), or nil.
func (t *Table) At(row, col int) Component {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return nil
	}
	return t.cells[row][col]
}

// Dims returns the number of rows and columns in t.
func (t *Table) Dims() (rows, cols int) {
	return t.rows, t.cols
}

// SetRowWeight overrides the weight of row. A weight of 0 makes the
// row fixed at its minimum height.
func (t *Table) SetRowWeight(row int, weight float64) *Table {
	if t.rowWeights == nil {
		t.rowWeights = make(map[int]float64)
	}
	t.rowWeights[row] = weight
	t.Invalidate()
	return t
}

// SetColumnWeight overrides the weight of col.
func (t *Table) SetColumnWeight(col int, weight float64) *Table {
	if t.colWeights == nil {
		t.colWeights = make(map[int]float64)
	}
	t.colWeights[col] = weight
	t.Invalidate()
	return t
}

// RowHeights returns the row heights of the last layout.
func (t *Table) RowHeights() []float64 {
	return t.heights
}

// ColumnWidths returns the column widths of the last layout.
func (t *Table) ColumnWidths() []float64 {
	return t.widths
}

// Components returns t's cells in row-major order, skipping empty
// cells.
func (t *Table) Components() []Component {
	var cs []Component
	for _, row := range t.cells {
		for _, c := range row {
			if c != nil {
				cs = append(cs, c)
			}
		}
	}
	return cs
}

func (t *Table) removeChild(c Component) {
	for _, row := range t.cells {
		for i := range row {
			if row[i] == c {
				row[i] = nil
				return
			}
		}
	}
}

// A track is a row or a column.
type track struct {
	min, weight float64
}

// tracks computes t's row and column constraints for an offer of w by
// h, using req to query each cell.
func (t *Table) tracks(w, h float64, req func(Component, float64, float64) Request) (rows, cols []track) {
	rows = make([]track, t.rows)
	cols = make([]track, t.cols)
	for r, row := range t.cells {
		for c, comp := range row {
			if comp == nil {
				continue
			}
			cr := req(comp, w, h)
			rows[r].min = max(rows[r].min, cr.Height)
			cols[c].min = max(cols[c].min, cr.Width)
			if cr.WantsHeight {
				rows[r].weight = 1
			}
			if cr.WantsWidth {
				cols[c].weight = 1
			}
		}
	}
	for r, wt := range t.rowWeights {
		if r < len(rows) {
			rows[r].weight = max(wt, 0)
		}
	}
	for c, wt := range t.colWeights {
		if c < len(cols) {
			cols[c].weight = max(wt, 0)
		}
	}
	return
}

// RequestedSpace returns the sum of the row and column minimums. The
// table wants more space in a direction if any track in that
// direction is flexible.
func (t *Table) RequestedSpace(w, h float64) Request {
	rows, cols := t.tracks(w, h, Component.RequestedSpace)
	var r Request
	for _, tr := range rows {
		r.Height += tr.min
		r.WantsHeight = r.WantsHeight || tr.weight > 0
	}
	for _, tr := range cols {
		r.Width += tr.min
		r.WantsWidth = r.WantsWidth || tr.weight > 0
	}
	return r
}

// ComputeLayout lays out t's cells. A table with any cells fills its
// whole allocation, even if every track is fixed, and its tracks
// always sum to that allocation when it covers their minimums.
func (t *Table) ComputeLayout(x, y, w, h float64) error {
	if err := t.Base.ComputeLayout(x, y, w, h); err != nil {
		return err
	}
	if len(t.Components()) > 0 {
		t.fill()
	}
	rows, cols := t.tracks(t.w, t.h, requestFor)
	t.heights = distribute(rows, t.h)
	t.widths = distribute(cols, t.w)
	ypos, xpos := offsets(t.heights), offsets(t.widths)

	var errs []error
	for r, row := range t.cells {
		for c, comp := range row {
			if comp == nil {
				continue
			}
			if err := comp.ComputeLayout(xpos[c], ypos[r], t.widths[c], t.heights[r]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// distribute sizes tracks to fill avail. Every track gets its minimum.
// Any remaining space goes to tracks in proportion to their weights,
// or equally to all tracks if none has weight, and the sizes then sum
// to avail.
func distribute(tracks []track, avail float64) []float64 {
	sizes := make([]float64, len(tracks))
	var total, wsum float64
	for i, tr := range tracks {
		sizes[i] = tr.min
		total += tr.min
		wsum += tr.weight
	}
	slack := avail - total
	if slack <= 0 || len(tracks) == 0 {
		return sizes
	}

	last := -1
	for i, tr := range tracks {
		switch {
		case wsum == 0:
			sizes[i] += slack / float64(len(tracks))
		case tr.weight > 0:
			sizes[i] += slack * tr.weight / wsum
		default:
			continue
		}
		last = i
	}

	// Absorb rounding error in the last track that grew.
	var others float64
	for i, s := range sizes {
		if i != last {
			others += s
		}
	}
	sizes[last] = avail - others
	return sizes
}

// offsets returns the starting position of each track.
func offsets(sizes []float64) []float64 {
	pos := make([]float64, len(sizes))
	var p float64
	for i, s := range sizes {
		pos[i] = p
		p += s
	}
	return pos
}
