/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package observe

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dictionary is a keyed map with the same single-observer before/after
// notification contract as Collection. Keys are ordered for enumeration.
//
// The zero value is not usable, see NewDictionary.
type Dictionary[K constraints.Ordered, V comparable] struct {
	items    map[K]V
	observer *DictionaryObserver[K, V]
}

// DictionaryObserver receives mutation notifications from one Dictionary.
// Any callback may be nil.
type DictionaryObserver[K constraints.Ordered, V comparable] struct {
	BeforeAdd    func(key K, value V) (V, bool)
	AfterAdd     func(key K, value V)
	BeforeRemove func(key K, value V) (V, bool)
	AfterRemove  func(key K, value V)
}

func NewDictionary[K constraints.Ordered, V comparable]() *Dictionary[K, V] {
	return &Dictionary[K, V]{items: make(map[K]V)}
}

// Observe installs the observer.
//
// # Panics:
//   - if an observer is already installed (ErrObserved).
func (d *Dictionary[K, V]) Observe(o *DictionaryObserver[K, V]) {
	if d.observer != nil {
		panic(fmt.Errorf("dictionary is already observed: %w", ErrObserved))
	}
	d.observer = o
}

func (d *Dictionary[K, V]) Unobserve() {
	d.observer = nil
}

// Add stores value under key.
//
// # Panics:
//   - if the key is already present (ErrAlreadyExists),
//   - if the observer vetoes the value (ErrRejected).
func (d *Dictionary[K, V]) Add(key K, value V) {
	if _, ok := d.items[key]; ok {
		panic(fmt.Errorf("key «%v» already exists: %w", key, ErrAlreadyExists))
	}
	value, ok := d.beforeAdd(key, value)
	if !ok {
		panic(fmt.Errorf("value rejected by collection policy: %w", ErrRejected))
	}
	d.items[key] = value
	d.afterAdd(key, value)
}

// Set replaces the value under an existing key, removing the old value
// first. Returns false if the key is absent or the observer vetoes
// either side of the replacement.
func (d *Dictionary[K, V]) Set(key K, value V) bool {
	old, ok := d.items[key]
	if !ok {
		return false
	}
	value, ok = d.beforeAdd(key, value)
	if !ok {
		return false
	}
	old, ok = d.beforeRemove(key, old)
	if !ok {
		return false
	}
	d.items[key] = value
	d.afterRemove(key, old)
	d.afterAdd(key, value)
	return true
}

// Remove deletes key. Returns false if the key is absent or the observer
// vetoes the removal.
func (d *Dictionary[K, V]) Remove(key K) bool {
	value, ok := d.items[key]
	if !ok {
		return false
	}
	value, ok = d.beforeRemove(key, value)
	if !ok {
		return false
	}
	delete(d.items, key)
	d.afterRemove(key, value)
	return true
}

// Clear removes entries one at a time and returns the count actually
// removed. Vetoed entries stay, so a partial clear is possible.
func (d *Dictionary[K, V]) Clear() int {
	removed := 0
	for _, key := range d.Keys() {
		if d.Remove(key) {
			removed++
		}
	}
	return removed
}

func (d *Dictionary[K, V]) Item(key K) (V, bool) {
	value, ok := d.items[key]
	return value, ok
}

func (d *Dictionary[K, V]) Contains(key K) bool {
	_, ok := d.items[key]
	return ok
}

func (d *Dictionary[K, V]) Len() int {
	return len(d.items)
}

// Keys returns the keys in sorted order.
func (d *Dictionary[K, V]) Keys() []K {
	keys := maps.Keys(d.items)
	slices.Sort(keys)
	return keys
}

// Enum calls cb for every entry in key order.
func (d *Dictionary[K, V]) Enum(cb func(key K, value V)) {
	for _, key := range d.Keys() {
		cb(key, d.items[key])
	}
}

func (d *Dictionary[K, V]) beforeAdd(key K, value V) (V, bool) {
	if (d.observer != nil) && (d.observer.BeforeAdd != nil) {
		return d.observer.BeforeAdd(key, value)
	}
	return value, true
}

func (d *Dictionary[K, V]) afterAdd(key K, value V) {
	if (d.observer != nil) && (d.observer.AfterAdd != nil) {
		d.observer.AfterAdd(key, value)
	}
}

func (d *Dictionary[K, V]) beforeRemove(key K, value V) (V, bool) {
	if (d.observer != nil) && (d.observer.BeforeRemove != nil) {
		return d.observer.BeforeRemove(key, value)
	}
	return value, true
}

func (d *Dictionary[K, V]) afterRemove(key K, value V) {
	if (d.observer != nil) && (d.observer.AfterRemove != nil) {
		d.observer.AfterRemove(key, value)
	}
}
