/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// tableItem constrains a table to pointer table object types.
type tableItem interface {
	TableObject
	comparable
}

// Table is a named resource registry: one instance per resource kind
// lives in every document. Beside the name-keyed object map it keeps a
// parallel reference map, name → dependents currently using the entry.
// The reference list gates removal: an entry can be removed only when
// nothing references it.
//
// # Implements:
//   - DxfObject
type Table[T tableItem] struct {
	dxfObject
	doc      *Document
	name     string
	max      int
	items    map[string]T
	refs     map[string][]DxfObject
	onAdd    func(T)
	onRemove func(T)
}

// onAdd interns every cross-referenced resource of a freshly registered
// item and wires its change observers; onRemove is the exact mirror.
func newTable[T tableItem](doc *Document, name string, max int, onAdd, onRemove func(T)) *Table[T] {
	t := &Table[T]{
		dxfObject: dxfObject{codeName: codeNameTable},
		doc:       doc,
		name:      name,
		max:       max,
		items:     make(map[string]T),
		refs:      make(map[string][]DxfObject),
		onAdd:     onAdd,
		onRemove:  onRemove,
	}
	t.setOwner(doc)
	return t
}

// Returns the table name («LAYER», «LTYPE», …).
func (t *Table[T]) Name() string { return t.name }

// Add registers item and returns the canonical instance.
//
// If the table already contains an object with the same name, that
// object is returned unchanged and item stays detached: callers must
// always continue with the returned instance, never with their own.
//
// Registration assigns a handle when the item carries none (a handle
// restored from a stream is kept, see RestoreHandle), creates an empty
// reference list, recursively interns every resource the item
// cross-references, and wires the rename and reassignment observers.
//
// # Panics:
//   - if item is nil (ErrMissedError),
//   - if item is registered elsewhere (ErrInvalidError),
//   - if the table is full (ErrTooManyError).
func (t *Table[T]) Add(item T) T {
	return t.add(item)
}

func (t *Table[T]) add(item T) T {
	var zero T
	if item == zero {
		panic(ErrMissed("%s table object", t.name))
	}
	key := nameKey(item.Name())
	if existing, ok := t.items[key]; ok {
		return existing
	}
	if item.Owner() != nil {
		panic(ErrInvalid("%s «%s» already belongs to another table", t.name, item.Name()))
	}
	if len(t.items) >= t.max {
		panic(ErrTooMany("%s table is full (%d entries)", t.name, t.max))
	}

	if item.Handle() == "" {
		t.doc.assignHandle(item)
	}
	t.items[key] = item
	t.refs[key] = make([]DxfObject, 0)
	item.setOwner(t)
	t.doc.registerAdded(item)
	t.wireRename(item)
	t.doc.internXData(item.XData(), item)
	if t.onAdd != nil {
		t.onAdd(item)
	}
	return item
}

// seed registers a reserved default without the recursive intern: the
// sub-resources of a default point at sibling defaults and must not
// count as references (a fresh document reports zero references
// everywhere). Change observers are still wired by the caller so later
// reassignments behave exactly as for regular entries.
func (t *Table[T]) seed(item T) T {
	item.markReserved()
	key := nameKey(item.Name())
	t.doc.assignHandle(item)
	t.items[key] = item
	t.refs[key] = make([]DxfObject, 0)
	item.setOwner(t)
	t.doc.registerAdded(item)
	t.wireRename(item)
	return item
}

// Remove unregisters item. Returns false, never an error, if item is
// nil, not registered here, reserved, or still referenced. On success
// every resource the item cross-referenced is released (the exact
// mirror of Add), observers are unwired and the handle and owner are
// cleared.
func (t *Table[T]) Remove(item T) bool {
	var zero T
	if item == zero {
		return false
	}
	key := nameKey(item.Name())
	existing, ok := t.items[key]
	if !ok || (existing != item) {
		return false
	}
	if item.IsReserved() {
		return false
	}
	if len(t.refs[key]) > 0 {
		return false
	}

	if t.onRemove != nil {
		t.onRemove(item)
	}
	t.doc.releaseXData(item.XData(), item)
	delete(t.items, key)
	delete(t.refs, key)
	t.doc.unregisterAdded(item)
	item.setRenameObserver(nil)
	item.setOwner(nil)
	item.setHandle("")
	return true
}

// RemoveByName removes the object registered under name, see Remove.
func (t *Table[T]) RemoveByName(name string) bool {
	item, ok := t.items[nameKey(name)]
	if !ok {
		return false
	}
	return t.Remove(item)
}

// Item returns the object registered under name.
func (t *Table[T]) Item(name string) (T, bool) {
	item, ok := t.items[nameKey(name)]
	return item, ok
}

func (t *Table[T]) Contains(name string) bool {
	_, ok := t.items[nameKey(name)]
	return ok
}

func (t *Table[T]) Count() int { return len(t.items) }

// Names returns the registered names in sorted order.
func (t *Table[T]) Names() []string {
	names := make([]string, 0, len(t.items))
	for _, item := range t.items {
		names = append(names, item.Name())
	}
	slices.Sort(names)
	return names
}

// Enum calls cb for every registered object in name order.
func (t *Table[T]) Enum(cb func(T)) {
	keys := maps.Keys(t.items)
	slices.Sort(keys)
	for _, key := range keys {
		cb(t.items[key])
	}
}

// References returns the dependents currently using the named entry.
func (t *Table[T]) References(name string) []DxfObject {
	return slices.Clone(t.refs[nameKey(name)])
}

// addRef records dep as a dependent of the named entry. Every code path
// that assigns a cross-reference must pair an intern with an addRef;
// the reference map is maintained incrementally, never recomputed.
func (t *Table[T]) addRef(name string, dep DxfObject) {
	key := nameKey(name)
	t.refs[key] = append(t.refs[key], dep)
}

// delRef removes one occurrence of dep from the named entry. Removing
// an absent dependent is a no-op.
func (t *Table[T]) delRef(name string, dep DxfObject) {
	key := nameKey(name)
	list := t.refs[key]
	for i, d := range list {
		if d == dep {
			t.refs[key] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// wireRename subscribes to the item rename notification: the table
// validates the new name against its entries and re-keys both the name
// map and the reference map, keeping the same reference list value so
// existing dependent tracking survives the rename.
func (t *Table[T]) wireRename(item T) {
	item.setRenameObserver(func(from, to string) {
		fromKey, toKey := nameKey(from), nameKey(to)
		if fromKey == toKey {
			return // case-only rename, keys unchanged
		}
		if _, ok := t.items[toKey]; ok {
			panic(ErrAlreadyExists("%s «%s»", t.name, to))
		}
		refs := t.refs[fromKey]
		delete(t.items, fromKey)
		delete(t.refs, fromKey)
		t.items[toKey] = item
		t.refs[toKey] = refs
	})
}

// intern registers item and records dep in its reference list. Returns
// the canonical instance.
func intern[T tableItem](t *Table[T], item T, dep DxfObject) T {
	item = t.add(item)
	t.addRef(item.Name(), dep)
	return item
}

// release removes dep from the reference list of item. The mirror of
// intern.
func release[T tableItem](t *Table[T], item T, dep DxfObject) {
	var zero T
	if item == zero {
		return
	}
	t.delRef(item.Name(), dep)
}
