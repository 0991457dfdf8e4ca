// Package state provides typed value bindings that mirror in-memory state to
// one durable store key each.
package state

import (
	"sync"

	"github.com/ganot/rosterdesk/internal/localstore"
)

// Value binds an in-memory value of type T to a single store key. It
// initializes from storage, writes through on every Set, and notifies
// subscribers synchronously with each change.
type Value[T any] struct {
	store *localstore.Store
	key   string

	mu      sync.Mutex
	current T
	next    int
	subs    map[int]func(T)
}

// New creates a binding for key. If the key holds a decodable value of type T
// it becomes the current value; otherwise the binding starts at initial.
// Schema mismatch or a corrupt entry falls back to initial, it is never an
// error.
func New[T any](store *localstore.Store, key string, initial T) *Value[T] {
	v := &Value[T]{
		store:   store,
		key:     key,
		current: initial,
		subs:    map[int]func(T){},
	}

	var loaded T
	if store.Get(key, &loaded) {
		v.current = loaded
	}
	return v
}

// Key returns the store key the binding owns.
func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and writes it through to storage. Every call
// writes, whether or not the value changed.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.current = value
	v.store.Set(v.key, value)
	subs := v.subscribers()
	v.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Update applies fn to the current value under the binding's lock, so the
// read-modify-write sequence is never interleaved with another Update or Set.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	value := fn(v.current)
	v.current = value
	v.store.Set(v.key, value)
	subs := v.subscribers()
	v.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
	return value
}

// Subscribe registers fn to run on every change and returns a release
// function.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	v.subs[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

func (v *Value[T]) subscribers() []func(T) {
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	return subs
}
