// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// An Accessor extracts one value from a record for one visual
// channel.
//
// Accessors have identity: two Accessors built from the same function
// are distinct, and caches keyed by Accessor (such as a Dataset's
// extent cache) treat them as different entries. Reuse an Accessor
// value to share a cache entry.
type Accessor struct {
	id   uint64
	name string
	fn   func(d interface{}, i int) interface{}
}

var lastAccessor uint64

// NewAccessor returns an Accessor that calls fn with each record and
// its index.
func NewAccessor(fn func(d interface{}, i int) interface{}) *Accessor {
	return &Accessor{id: atomic.AddUint64(&lastAccessor, 1), fn: fn}
}

// Const returns an Accessor that always returns v.
func Const(v interface{}) *Accessor {
	a := NewAccessor(func(interface{}, int) interface{} { return v })
	a.name = fmt.Sprintf("const(%v)", v)
	return a
}

// Index returns an Accessor that returns each record's index.
func Index() *Accessor {
	a := NewAccessor(func(_ interface{}, i int) interface{} { return i })
	a.name = "index"
	return a
}

// Field returns an Accessor that extracts the named field from
// records that are maps with string keys or structs (or pointers to
// structs). Records without the field yield nil.
func Field(name string) *Accessor {
	a := NewAccessor(func(d interface{}, _ int) interface{} {
		switch d := d.(type) {
		case map[string]interface{}:
			return d[name]
		case map[string]float64:
			v, ok := d[name]
			if !ok {
				return nil
			}
			return v
		case map[string]string:
			v, ok := d[name]
			if !ok {
				return nil
			}
			return v
		}
		v := reflect.ValueOf(d)
		for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		switch v.Kind() {
		case reflect.Struct:
			f := v.FieldByName(name)
			if !f.IsValid() || !f.CanInterface() {
				return nil
			}
			return f.Interface()
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil
			}
			f := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
			if !f.IsValid() {
				return nil
			}
			return f.Interface()
		}
		return nil
	})
	a.name = name
	return a
}

// ID returns a's identity. IDs are never reused.
func (a *Accessor) ID() uint64 {
	return a.id
}

// Get applies a to record d at index i.
func (a *Accessor) Get(d interface{}, i int) interface{} {
	return a.fn(d, i)
}

func (a *Accessor) String() string {
	if a.name != "" {
		return a.name
	}
	return fmt.Sprintf("accessor#%d", a.id)
}
