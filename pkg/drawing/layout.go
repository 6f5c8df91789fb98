/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Layout is a drawing sheet: the model space or one paper space. Each
// layout displays the entities of its associated block; registering a
// layout without a block creates a fresh paper space block.
//
// # Implements:
//   - TableObject
type Layout struct {
	tableObject

	TabOrder   int
	MinLimit   Vector2
	MaxLimit   Vector2
	BasePoint  Vector3
	PlotOrigin Vector2

	block *Block
}

// NewLayout builds a detached layout.
//
// # Panics:
//   - if name is empty or malformed.
func NewLayout(name string) *Layout {
	return &Layout{
		tableObject: makeTableObject(name, codeNameLayout),
		MaxLimit:    Vector2{X: 420, Y: 297},
	}
}

// AssociatedBlock returns the block whose entities the layout displays.
// Nil only while the layout is detached.
func (l *Layout) AssociatedBlock() *Block { return l.block }

// IsModelSpace reports whether this is the model space layout.
func (l *Layout) IsModelSpace() bool {
	return nameKey(l.Name()) == nameKey(DefaultLayoutName)
}
