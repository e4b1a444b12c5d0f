// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset provides mutable, observable record sequences.
//
// Records are opaque to a Dataset. Accessors interpret them.
package dataset

import "github.com/aclements/go-plotkit/broadcast"

// Dataset is an ordered sequence of records plus an opaque metadata
// value. Every call to SetData or SetMetadata broadcasts to the
// Dataset's listeners after the assignment, even if the new value is
// the same as the old.
type Dataset struct {
	data []interface{}
	meta interface{}
	b    *broadcast.Broadcaster

	// extents caches the extent of each Accessor that has been
	// asked about, keyed by Accessor identity.
	extents map[uint64]Extent
}

// New returns a Dataset containing data.
func New(data ...interface{}) *Dataset {
	d := &Dataset{data: data, extents: make(map[uint64]Extent)}
	d.b = broadcast.New(d)
	return d
}

// Data returns d's records. The caller must not modify the returned
// slice; use SetData instead.
func (d *Dataset) Data() []interface{} {
	return d.data
}

// Len returns the number of records in d.
func (d *Dataset) Len() int {
	return len(d.data)
}

// SetData replaces d's records and broadcasts.
func (d *Dataset) SetData(data []interface{}) *Dataset {
	d.data = data
	d.invalidate()
	d.b.Broadcast()
	return d
}

// Metadata returns d's metadata.
func (d *Dataset) Metadata() interface{} {
	return d.meta
}

// SetMetadata replaces d's metadata and broadcasts.
func (d *Dataset) SetMetadata(meta interface{}) *Dataset {
	d.meta = meta
	d.invalidate()
	d.b.Broadcast()
	return d
}

// Broadcaster returns the Broadcaster that d notifies on mutation.
func (d *Dataset) Broadcaster() *broadcast.Broadcaster {
	return d.b
}

// Extent returns the extent of acc over d's records. The result is
// cached until the next SetData or SetMetadata.
func (d *Dataset) Extent(acc *Accessor) Extent {
	if e, ok := d.extents[acc.id]; ok {
		return e
	}
	e := computeExtent(d.data, acc)
	d.extents[acc.id] = e
	return e
}

// ForgetExtent drops any cached extent for acc.
func (d *Dataset) ForgetExtent(acc *Accessor) {
	delete(d.extents, acc.id)
}

func (d *Dataset) invalidate() {
	for k := range d.extents {
		delete(d.extents, k)
	}
}
