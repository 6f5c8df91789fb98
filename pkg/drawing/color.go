/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "fmt"

// AciColor is an AutoCAD color index. Index 0 is «by block», 256 is «by
// layer», 1…255 address the ACI palette.
type AciColor struct {
	index int16
}

const (
	aciByBlock int16 = 0
	aciByLayer int16 = 256
)

func ColorByBlock() AciColor { return AciColor{aciByBlock} }

func ColorByLayer() AciColor { return AciColor{aciByLayer} }

// ColorFromIndex builds a palette color.
//
// # Panics:
//   - if index is out of the 1…255 palette range (ErrInvalidError).
func ColorFromIndex(index int16) AciColor {
	if (index < 1) || (index > 255) {
		panic(ErrInvalid("color index %d out of palette range [1, 255]", index))
	}
	return AciColor{index}
}

func (c AciColor) Index() int16 { return c.index }

func (c AciColor) IsByBlock() bool { return c.index == aciByBlock }

func (c AciColor) IsByLayer() bool { return c.index == aciByLayer }

func (c AciColor) String() string {
	switch c.index {
	case aciByBlock:
		return "ByBlock"
	case aciByLayer:
		return "ByLayer"
	}
	return fmt.Sprintf("ACI(%d)", c.index)
}

// Transparency is an entity transparency: 0 (opaque) … 90 percent, or
// inherited from the layer.
type Transparency struct {
	value   int8
	byLayer bool
}

func TransparencyByLayer() Transparency { return Transparency{byLayer: true} }

// TransparencyFromValue builds an explicit transparency.
//
// # Panics:
//   - if value is out of the 0…90 range.
func TransparencyFromValue(value int8) Transparency {
	if (value < 0) || (value > 90) {
		panic(ErrInvalid("transparency %d out of range [0, 90]", value))
	}
	return Transparency{value: value}
}

func (t Transparency) Value() int8 { return t.value }

func (t Transparency) IsByLayer() bool { return t.byLayer }

// Lineweight is a plotted line width in hundredths of a millimeter,
// or one of the inherited values.
type Lineweight int16

const (
	LineweightByLayer  Lineweight = -1
	LineweightByBlock  Lineweight = -2
	LineweightDefault  Lineweight = -3
	LineweightW0       Lineweight = 0
	LineweightW13      Lineweight = 13
	LineweightW25      Lineweight = 25
	LineweightW50      Lineweight = 50
	LineweightW100     Lineweight = 100
	LineweightMaxValue Lineweight = 211
)
