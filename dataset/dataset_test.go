// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/aclements/go-plotkit/broadcast"
	"github.com/google/go-cmp/cmp"
)

func TestBroadcastOnSet(t *testing.T) {
	d := New(1, 2, 3)
	calls := 0
	var gotSrc interface{}
	d.Broadcaster().RegisterListener(broadcast.NewKey(), func(src interface{}, _ ...interface{}) {
		calls++
		gotSrc = src
		if d.Len() != 1 {
			t.Errorf("listener saw %d records, want 1", d.Len())
		}
	})
	data := []interface{}{4}
	d.SetData(data)
	if calls != 1 {
		t.Fatalf("want 1 broadcast after SetData, got %d", calls)
	}
	if gotSrc != d {
		t.Errorf("broadcast source is %v, want the dataset", gotSrc)
	}

	// Setting the same value still broadcasts.
	d.SetData(data)
	if calls != 2 {
		t.Errorf("want 2 broadcasts, got %d", calls)
	}
	d.SetMetadata("m")
	if calls != 3 || d.Metadata() != "m" {
		t.Errorf("SetMetadata: calls=%d meta=%v", calls, d.Metadata())
	}
}

func TestExtent(t *testing.T) {
	t0 := time.Unix(100, 0)
	for _, test := range []struct {
		name string
		data []interface{}
		want Extent
	}{
		{"numeric", []interface{}{3, 1.5, uint8(7), nil, math.NaN()},
			Extent{Numeric: true, Min: 1.5, Max: 7}},
		{"categorical", []interface{}{"b", "a", "b", "c", "a"},
			Extent{Values: []interface{}{"b", "a", "c"}}},
		{"time", []interface{}{t0, t0.Add(time.Second)},
			Extent{Numeric: true, Min: 100e9, Max: 101e9}},
	} {
		d := New(test.data...)
		got := d.Extent(NewAccessor(func(v interface{}, _ int) interface{} { return v }))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: extent (-want +got):\n%s", test.name, diff)
		}
	}

	if e := New().Extent(Index()); !e.Empty() {
		t.Errorf("extent of empty dataset is %+v, want empty", e)
	}
}

func TestExtentCache(t *testing.T) {
	calls := 0
	acc := NewAccessor(func(v interface{}, _ int) interface{} {
		calls++
		return v
	})
	d := New(1, 2)
	d.Extent(acc)
	d.Extent(acc)
	if calls != 2 {
		t.Errorf("accessor called %d times for two cached extents, want 2", calls)
	}

	// A distinct accessor with the same behavior is a distinct
	// cache entry.
	other := NewAccessor(func(v interface{}, _ int) interface{} {
		calls++
		return v
	})
	d.Extent(other)
	if calls != 4 {
		t.Errorf("distinct accessor shared a cache entry")
	}

	d.SetData([]interface{}{5, 9, 1})
	e := d.Extent(acc)
	if e.Min != 1 || e.Max != 9 {
		t.Errorf("stale extent after SetData: %+v", e)
	}
}

func TestField(t *testing.T) {
	type rec struct{ X, Y float64 }
	x := Field("X")
	for _, test := range []struct {
		rec  interface{}
		want interface{}
	}{
		{map[string]interface{}{"X": 1.0}, 1.0},
		{map[string]float64{"X": 2}, 2.0},
		{rec{X: 3}, 3.0},
		{&rec{X: 4}, 4.0},
		{map[string]interface{}{"Y": 1.0}, nil},
		{(*rec)(nil), nil},
		{42, nil},
	} {
		if got := x.Get(test.rec, 0); got != test.want {
			t.Errorf("Field(X) of %#v = %v, want %v", test.rec, got, test.want)
		}
	}
}
