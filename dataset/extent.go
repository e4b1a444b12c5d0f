// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"reflect"
	"time"
)

// An Extent summarizes the values an Accessor produces over a
// Dataset.
//
// If the values are numeric (including time.Time and time.Duration),
// Numeric is true and Min and Max bound the finite values. Otherwise
// Values lists the distinct values in the order they were first seen.
type Extent struct {
	Numeric  bool
	Min, Max float64
	Values   []interface{}
}

// Empty reports whether e contains no values.
func (e Extent) Empty() bool {
	if e.Numeric {
		return math.IsNaN(e.Min)
	}
	return len(e.Values) == 0
}

var float64Type = reflect.TypeOf(float64(0))

// Float converts a numeric value to float64. time.Time values are
// converted to nanoseconds since the Unix epoch. It returns false
// for nil and non-numeric values.
func Float(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case time.Time:
		return float64(v.UnixNano()), true
	case time.Duration:
		return float64(v), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Convert(float64Type).Float(), true
	}
	return 0, false
}

// IsNumeric reports whether Float accepts v.
func IsNumeric(v interface{}) bool {
	_, ok := Float(v)
	return ok
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// computeExtent scans data with acc. The first non-nil value decides
// whether the extent is numeric or categorical; values of the other
// kind are ignored, as are NaNs and infinities.
func computeExtent(data []interface{}, acc *Accessor) Extent {
	e := Extent{Min: math.NaN(), Max: math.NaN()}
	decided := false
	var seen map[interface{}]bool
	for i, d := range data {
		v := acc.Get(d, i)
		if v == nil {
			continue
		}
		if !decided {
			e.Numeric = IsNumeric(v)
			decided = true
			if !e.Numeric {
				e.Min, e.Max = 0, 0
				seen = make(map[interface{}]bool)
			}
		}
		if e.Numeric {
			x, ok := Float(v)
			if !ok || !isFinite(x) {
				continue
			}
			if math.IsNaN(e.Min) || x < e.Min {
				e.Min = x
			}
			if math.IsNaN(e.Max) || x > e.Max {
				e.Max = x
			}
			continue
		}
		if IsNumeric(v) || !reflect.TypeOf(v).Comparable() {
			continue
		}
		if !seen[v] {
			seen[v] = true
			e.Values = append(e.Values, v)
		}
	}
	if !decided {
		// No values at all. Report a numeric empty extent; it
		// contributes nothing to either kind of union.
		e.Numeric = true
	}
	return e
}
