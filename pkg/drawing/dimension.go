/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "math"

// DimensionKind discriminates the measured geometry of a dimension.
type DimensionKind uint8

const (
	DimensionAligned DimensionKind = iota
	DimensionLinear
)

// DimStyleOverrideType names one dimension style variable overridden on
// a single dimension.
type DimStyleOverrideType uint8

const (
	DimOverrideScale DimStyleOverrideType = iota
	DimOverrideTextHeight
	DimOverrideArrowSize
	DimOverrideTextStyle       // value is *TextStyle
	DimOverrideDimLineLinetype // value is *Linetype
	DimOverrideDimArrow1       // value is *Block
	DimOverrideDimArrow2       // value is *Block
)

// Dimension measures between two definition points, rendering through
// a dimension style with optional per-dimension overrides. Overrides
// whose value is a table object (text style, linetype, arrow block) are
// interned like any other cross-reference while the dimension is
// attached.
//
// # Implements:
//   - Entity
type Dimension struct {
	entityObject

	Kind DimensionKind
	P1   Vector3
	P2   Vector3
	// distance from the measured points to the dimension line
	Offset float64
	// measurement direction for linear dimensions, degrees
	Rotation float64

	// StyleOverrides are per-dimension style variable overrides. The
	// attach state machine replaces table object values with their
	// canonical instances.
	StyleOverrides map[DimStyleOverrideType]any

	style         *DimensionStyle
	onStyleChange func(*DimensionStyle) *DimensionStyle

	// optional pre-rendered geometry block («*D…»)
	block *Block
}

// NewAlignedDimension measures the straight distance between p1 and p2.
func NewAlignedDimension(p1, p2 Vector3, offset float64) *Dimension {
	return newDimension(DimensionAligned, p1, p2, offset)
}

// NewLinearDimension measures the distance between p1 and p2 projected
// onto the rotation direction.
func NewLinearDimension(p1, p2 Vector3, offset, rotation float64) *Dimension {
	d := newDimension(DimensionLinear, p1, p2, offset)
	d.Rotation = rotation
	return d
}

func newDimension(kind DimensionKind, p1, p2 Vector3, offset float64) *Dimension {
	return &Dimension{
		entityObject:   makeEntityObject(EntityType_Dimension, codeNameDimension),
		Kind:           kind,
		P1:             p1,
		P2:             p2,
		Offset:         offset,
		StyleOverrides: make(map[DimStyleOverrideType]any),
		style:          NewDimensionStyle(DefaultDimStyleName),
	}
}

// Measurement returns the measured distance: the straight distance
// for aligned dimensions, the projection of P2-P1 onto the rotation
// direction for linear ones.
func (d *Dimension) Measurement() float64 {
	v := d.P2.Sub(d.P1)
	if d.Kind == DimensionLinear {
		rad := d.Rotation * math.Pi / 180
		return math.Abs(v.X*math.Cos(rad) + v.Y*math.Sin(rad))
	}
	return v.Length()
}

func (d *Dimension) Style() *DimensionStyle { return d.style }

// SetStyle reassigns the dimension style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (d *Dimension) SetStyle(style *DimensionStyle) {
	if style == nil {
		panic(ErrMissed("dimension style"))
	}
	if d.onStyleChange != nil {
		style = d.onStyleChange(style)
	}
	d.style = style
}

func (d *Dimension) setStyleObserver(f func(*DimensionStyle) *DimensionStyle) {
	d.onStyleChange = f
}

// Block returns the pre-rendered geometry block, nil when the
// dimension renders from its definition points.
func (d *Dimension) Block() *Block { return d.block }

// SetBlock assigns a pre-rendered geometry block. Only legal while the
// dimension is detached; the attach state machine interns it.
//
// # Panics:
//   - if the dimension is attached (ErrInvalidError).
func (d *Dimension) SetBlock(block *Block) {
	if d.Owner() != nil {
		panic(ErrInvalid("cannot replace the geometry block of an attached dimension"))
	}
	d.block = block
}
