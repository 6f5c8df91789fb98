/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "github.com/voedger/dxf/pkg/observe"

// MLineStyleElement is one parallel element of a multiline: its signed
// offset from the axis, color and linetype.
type MLineStyleElement struct {
	Offset float64
	Color  AciColor

	linetype         *Linetype
	onLinetypeChange func(*Linetype) *Linetype
}

// NewMLineStyleElement builds an element with the given offset, default
// color and «ByLayer» linetype.
func NewMLineStyleElement(offset float64) *MLineStyleElement {
	return &MLineStyleElement{
		Offset:   offset,
		Color:    ColorByLayer(),
		linetype: NewLinetype(ByLayerLinetypeName),
	}
}

func (e *MLineStyleElement) Linetype() *Linetype { return e.linetype }

// SetLinetype reassigns the element linetype.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (e *MLineStyleElement) SetLinetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("multiline style element linetype"))
	}
	if e.onLinetypeChange != nil {
		linetype = e.onLinetypeChange(linetype)
	}
	e.linetype = linetype
}

// MLineStyle is a composite resource: an ordered set of parallel
// elements, each referencing a linetype. Element mutations notify the
// owning table through the element collection, so linetype references
// stay balanced while the style is registered.
//
// # Implements:
//   - TableObject
type MLineStyle struct {
	tableObject

	Description string
	StartAngle  float64
	EndAngle    float64
	FillColor   AciColor
	IsFilled    bool

	elements *observe.Collection[*MLineStyleElement]

	// set while the style is registered; interns element linetypes
	onElementAdd    func(*MLineStyleElement)
	onElementRemove func(*MLineStyleElement)
}

// NewMLineStyle builds a detached style with the two stock elements at
// offsets ±0.5.
//
// # Panics:
//   - if name is empty or malformed.
func NewMLineStyle(name string) *MLineStyle {
	s := &MLineStyle{
		tableObject: makeTableObject(name, codeNameMLineStyle),
		StartAngle:  90.0,
		EndAngle:    90.0,
		FillColor:   ColorByLayer(),
		elements:    observe.NewCollection[*MLineStyleElement](),
	}
	s.elements.Observe(&observe.CollectionObserver[*MLineStyleElement]{
		BeforeAdd: func(e *MLineStyleElement) (*MLineStyleElement, bool) {
			return e, e != nil
		},
		AfterAdd: func(e *MLineStyleElement) {
			if s.onElementAdd != nil {
				s.onElementAdd(e)
			}
		},
		AfterRemove: func(e *MLineStyleElement) {
			if s.onElementRemove != nil {
				s.onElementRemove(e)
			}
		},
	})
	s.elements.Add(NewMLineStyleElement(0.5))
	s.elements.Add(NewMLineStyleElement(-0.5))
	return s
}

// Elements returns the element collection. Adding or removing elements
// of a registered style updates the linetype reference lists.
func (s *MLineStyle) Elements() *observe.Collection[*MLineStyleElement] {
	return s.elements
}
