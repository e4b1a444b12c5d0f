// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broadcast provides a synchronous one-to-many change
// notification primitive.
//
// Scales and datasets each own a Broadcaster. Anything that needs to
// learn about changes to them registers a callback under a Key it
// owns, and must deregister under the same Key when it no longer
// wants to be called.
package broadcast

import (
	"errors"
	"sync/atomic"
)

// A Key is an opaque listener identity. Keys are compared by value,
// so two distinct owners must never share a Key. Use NewKey to obtain
// one.
type Key uint64

var lastKey uint64

// NewKey returns a Key that has never been returned before.
func NewKey() Key {
	return Key(atomic.AddUint64(&lastKey, 1))
}

// A Callback is invoked by Broadcast with the entity that owns the
// Broadcaster and the arguments passed to Broadcast.
type Callback func(src interface{}, args ...interface{})

// ErrNotRegistered is returned by DeregisterListener in strict mode
// when the key has no registered callback.
var ErrNotRegistered = errors.New("listener not registered")

// Broadcaster maintains a registry of callbacks. Each Key has at
// most one callback and callbacks are invoked in the order their
// keys were first registered.
//
// The zero Broadcaster is not usable; use New.
type Broadcaster struct {
	src    interface{}
	order  []Key
	cbs    map[Key]Callback
	strict bool
}

// New returns a Broadcaster that reports src as the broadcasting
// entity.
func New(src interface{}) *Broadcaster {
	return &Broadcaster{src: src, cbs: make(map[Key]Callback)}
}

// SetStrict controls whether deregistering an unknown key is an
// error. By default it is silently ignored.
func (b *Broadcaster) SetStrict(strict bool) *Broadcaster {
	b.strict = strict
	return b
}

// RegisterListener registers cb under key. If key already has a
// callback, cb replaces it and keeps its position in the call order.
func (b *Broadcaster) RegisterListener(key Key, cb Callback) {
	if _, ok := b.cbs[key]; !ok {
		b.order = append(b.order, key)
	}
	b.cbs[key] = cb
}

// DeregisterListener removes the callback registered under key.
// Removing a key that is not registered is a no-op unless b is in
// strict mode, in which case it returns ErrNotRegistered.
func (b *Broadcaster) DeregisterListener(key Key) error {
	if _, ok := b.cbs[key]; !ok {
		if b.strict {
			return ErrNotRegistered
		}
		return nil
	}
	delete(b.cbs, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeregisterAllListeners empties the registry.
func (b *Broadcaster) DeregisterAllListeners() {
	b.order = nil
	b.cbs = make(map[Key]Callback)
}

// Has reports whether key has a registered callback.
func (b *Broadcaster) Has(key Key) bool {
	_, ok := b.cbs[key]
	return ok
}

// Len returns the number of registered callbacks.
func (b *Broadcaster) Len() int {
	return len(b.order)
}

// Broadcast synchronously invokes every registered callback with the
// owning entity and args.
//
// The set of callbacks is fixed when Broadcast is called. A callback
// that is deregistered by an earlier callback in the same broadcast
// is not invoked.
func (b *Broadcaster) Broadcast(args ...interface{}) {
	keys := append([]Key(nil), b.order...)
	for _, k := range keys {
		cb, ok := b.cbs[k]
		if !ok {
			continue
		}
		cb(b.src, args...)
	}
}
