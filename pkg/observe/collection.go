/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package observe

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Collection is an ordered sequence which notifies a single observer
// before and after every mutation.
//
// The before notification may veto the mutation and may substitute the
// value to commit. Notifications are delivered synchronously on the
// mutating call stack. A mutation is committed before its after
// notification runs, so handlers may add further items, including to
// this collection.
//
// The zero value is not usable, see NewCollection.
type Collection[T comparable] struct {
	items    []T
	observer *CollectionObserver[T]
}

// CollectionObserver receives mutation notifications from one Collection.
// Any callback may be nil. BeforeAdd and BeforeRemove return the item to
// actually commit and whether the mutation is accepted.
type CollectionObserver[T comparable] struct {
	BeforeAdd    func(item T) (T, bool)
	AfterAdd     func(item T)
	BeforeRemove func(item T) (T, bool)
	AfterRemove  func(item T)
}

func NewCollection[T comparable]() *Collection[T] {
	return &Collection[T]{items: make([]T, 0)}
}

// Observe installs the observer.
//
// # Panics:
//   - if an observer is already installed. Double observation would
//     double-count references, so the pairing with Unobserve is strict.
func (c *Collection[T]) Observe(o *CollectionObserver[T]) {
	if c.observer != nil {
		panic(fmt.Errorf("collection is already observed: %w", ErrObserved))
	}
	c.observer = o
}

// Unobserve removes the installed observer, if any.
func (c *Collection[T]) Unobserve() {
	c.observer = nil
}

// Add appends item and returns its index.
//
// # Panics:
//   - if the observer vetoes the item (ErrRejected).
func (c *Collection[T]) Add(item T) int {
	c.Insert(len(c.items), item)
	return len(c.items) - 1
}

// Insert inserts item at index.
//
// # Panics:
//   - if index is out of bounds (ErrOutOfBounds),
//   - if the observer vetoes the item (ErrRejected).
func (c *Collection[T]) Insert(index int, item T) {
	if (index < 0) || (index > len(c.items)) {
		panic(fmt.Errorf("insert index %d out of range [0, %d]: %w", index, len(c.items), ErrOutOfBounds))
	}
	item, ok := c.beforeAdd(item)
	if !ok {
		panic(fmt.Errorf("item rejected by collection policy: %w", ErrRejected))
	}
	c.items = slices.Insert(c.items, index, item)
	c.afterAdd(item)
}

// Remove removes the first occurrence of item. Returns false if the item
// is not present or the observer vetoes the removal.
func (c *Collection[T]) Remove(item T) bool {
	idx := slices.Index(c.items, item)
	if idx < 0 {
		return false
	}
	return c.RemoveAt(idx)
}

// RemoveAt removes the item at index. Returns false if index is out of
// bounds or the observer vetoes the removal.
func (c *Collection[T]) RemoveAt(index int) bool {
	if (index < 0) || (index >= len(c.items)) {
		return false
	}
	item, ok := c.beforeRemove(c.items[index])
	if !ok {
		return false
	}
	c.items = slices.Delete(c.items, index, index+1)
	c.afterRemove(item)
	return true
}

// Set replaces the item at index. Returns false if index is out of
// bounds or the observer vetoes removing the old item or adding the new
// one. The old item is removed before the new one is committed.
func (c *Collection[T]) Set(index int, item T) bool {
	if (index < 0) || (index >= len(c.items)) {
		return false
	}
	item, ok := c.beforeAdd(item)
	if !ok {
		return false
	}
	old, ok := c.beforeRemove(c.items[index])
	if !ok {
		return false
	}
	c.items[index] = item
	c.afterRemove(old)
	c.afterAdd(item)
	return true
}

// Clear removes items one at a time and returns the count actually
// removed. Items whose removal is vetoed stay in the collection, so a
// partial clear is an expected outcome, not a failure.
func (c *Collection[T]) Clear() int {
	removed := 0
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.RemoveAt(i) {
			removed++
		}
	}
	return removed
}

// Item returns the item at index.
//
// # Panics:
//   - if index is out of bounds (ErrOutOfBounds).
func (c *Collection[T]) Item(index int) T {
	if (index < 0) || (index >= len(c.items)) {
		panic(fmt.Errorf("index %d out of range [0, %d): %w", index, len(c.items), ErrOutOfBounds))
	}
	return c.items[index]
}

func (c *Collection[T]) Contains(item T) bool {
	return slices.Index(c.items, item) >= 0
}

func (c *Collection[T]) Index(item T) int {
	return slices.Index(c.items, item)
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Enum calls cb for every item in order.
func (c *Collection[T]) Enum(cb func(T)) {
	for _, item := range c.items {
		cb(item)
	}
}

// Items returns a copy of the underlying sequence.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

func (c *Collection[T]) beforeAdd(item T) (T, bool) {
	if (c.observer != nil) && (c.observer.BeforeAdd != nil) {
		return c.observer.BeforeAdd(item)
	}
	return item, true
}

func (c *Collection[T]) afterAdd(item T) {
	if (c.observer != nil) && (c.observer.AfterAdd != nil) {
		c.observer.AfterAdd(item)
	}
}

func (c *Collection[T]) beforeRemove(item T) (T, bool) {
	if (c.observer != nil) && (c.observer.BeforeRemove != nil) {
		return c.observer.BeforeRemove(item)
	}
	return item, true
}

func (c *Collection[T]) afterRemove(item T) {
	if (c.observer != nil) && (c.observer.AfterRemove != nil) {
		c.observer.AfterRemove(item)
	}
}
