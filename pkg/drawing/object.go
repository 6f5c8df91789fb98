/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// DxfObject is the persisted unit of a drawing: everything written to a
// DXF stream implements it.
//
// A handle is a document-unique uppercase hexadecimal identifier drawn
// from the document counter. A detached object has an empty handle and a
// nil owner. Owner is a back reference to the containing table, block or
// document, never an ownership pointer from child to parent.
//
// DxfObject is sealed: only types of this package implement it.
type DxfObject interface {
	// Returns the object handle. Empty while the object is detached.
	Handle() string

	// Returns the owning object. Nil while the object is detached.
	Owner() DxfObject

	// Returns the DXF record type tag («LAYER», «LINE», «TABLE», …).
	CodeName() string

	setHandle(handle string)
	setOwner(owner DxfObject)
}

// # Implements:
//   - DxfObject
type dxfObject struct {
	handle   string
	owner    DxfObject
	codeName string
}

func (o *dxfObject) Handle() string { return o.handle }

func (o *dxfObject) Owner() DxfObject { return o.owner }

func (o *dxfObject) CodeName() string { return o.codeName }

func (o *dxfObject) setHandle(handle string) { o.handle = handle }

func (o *dxfObject) setOwner(owner DxfObject) { o.owner = owner }

// RestoreHandle stores a handle read from a file onto a still detached
// object, so that registration keeps the persisted identity.
//
// Intended for stream readers; the graph itself always assigns handles
// from the document counter.
//
// # Panics:
//   - if the object is already registered (non nil owner).
func RestoreHandle(o DxfObject, handle string) {
	if o.Owner() != nil {
		panic(ErrInvalid("cannot restore handle «%s»: object «%s» is already registered", handle, o.Handle()))
	}
	o.setHandle(handle)
}
