/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// TableObject is a named, document scoped resource: a layer, a linetype,
// a text or dimension style, a block, an application registry, a view,
// an UCS, a viewport configuration or a layout.
//
// Names are unique within one table, compared case-insensitively. A
// reserved object («0» layer, «ByLayer» linetype, …) can be neither
// removed nor renamed.
//
// TableObject is sealed: only types of this package implement it.
type TableObject interface {
	DxfObject

	Name() string
	IsReserved() bool

	// Returns the extended data of the object, keyed by application
	// registry name. Never nil.
	XData() XDataMap

	setRenameObserver(func(from, to string))
	markReserved()
}

// # Implements:
//   - TableObject
type tableObject struct {
	dxfObject
	name     string
	reserved bool
	xData    XDataMap
	onRename func(from, to string)
}

func makeTableObject(name, codeName string) tableObject {
	if ok, err := ValidTableName(name); !ok {
		panic(err)
	}
	return tableObject{
		dxfObject: dxfObject{codeName: codeName},
		name:      name,
		xData:     make(XDataMap),
	}
}

func (to *tableObject) Name() string { return to.name }

func (to *tableObject) IsReserved() bool { return to.reserved }

func (to *tableObject) XData() XDataMap { return to.xData }

// SetName renames the object. While the object is registered, the
// owning table re-keys its name and reference maps.
//
// # Panics:
//   - if the object is reserved (ErrReservedError),
//   - if name is empty or malformed (ErrMissedError, ErrInvalidError),
//   - if the owning table already contains name (ErrAlreadyExistsError).
func (to *tableObject) SetName(name string) {
	if to.reserved {
		panic(ErrReserved("cannot rename «%s»", to.name))
	}
	if ok, err := ValidTableName(name); !ok {
		panic(err)
	}
	if name == to.name {
		return
	}
	if to.onRename != nil {
		to.onRename(to.name, name)
	}
	to.name = name
}

func (to *tableObject) setRenameObserver(f func(from, to string)) { to.onRename = f }

func (to *tableObject) markReserved() { to.reserved = true }
