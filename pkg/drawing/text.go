/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Text is a single line of annotation referencing a text style.
//
// # Implements:
//   - Entity
type Text struct {
	entityObject

	Value    string
	Position Vector3
	Height   float64
	Rotation float64

	style         *TextStyle
	onStyleChange func(*TextStyle) *TextStyle
}

// NewText builds a text entity with the default style.
//
// # Panics:
//   - if height is not positive.
func NewText(value string, position Vector3, height float64) *Text {
	if height <= 0 {
		panic(ErrInvalid("text height %f must be positive", height))
	}
	return &Text{
		entityObject: makeEntityObject(EntityType_Text, codeNameText),
		Value:        value,
		Position:     position,
		Height:       height,
		style:        NewTextStyle(DefaultTextStyleName, "simplex.shx"),
	}
}

func (t *Text) Style() *TextStyle { return t.style }

// SetStyle reassigns the text style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (t *Text) SetStyle(style *TextStyle) {
	if style == nil {
		panic(ErrMissed("text style"))
	}
	if t.onStyleChange != nil {
		style = t.onStyleChange(style)
	}
	t.style = style
}

func (t *Text) setStyleObserver(f func(*TextStyle) *TextStyle) { t.onStyleChange = f }

// MText is a multiline formatted annotation referencing a text style.
//
// # Implements:
//   - Entity
type MText struct {
	entityObject

	Value           string
	Position        Vector3
	Height          float64
	RectangleWidth  float64
	Rotation        float64
	LineSpacing     float64

	style         *TextStyle
	onStyleChange func(*TextStyle) *TextStyle
}

// NewMText builds a multiline text entity with the default style.
//
// # Panics:
//   - if height is not positive.
func NewMText(value string, position Vector3, height float64) *MText {
	if height <= 0 {
		panic(ErrInvalid("multiline text height %f must be positive", height))
	}
	return &MText{
		entityObject: makeEntityObject(EntityType_MText, codeNameMText),
		Value:        value,
		Position:     position,
		Height:       height,
		LineSpacing:  1.0,
		style:        NewTextStyle(DefaultTextStyleName, "simplex.shx"),
	}
}

func (t *MText) Style() *TextStyle { return t.style }

// SetStyle reassigns the text style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (t *MText) SetStyle(style *TextStyle) {
	if style == nil {
		panic(ErrMissed("multiline text style"))
	}
	if t.onStyleChange != nil {
		style = t.onStyleChange(style)
	}
	t.style = style
}

func (t *MText) setStyleObserver(f func(*TextStyle) *TextStyle) { t.onStyleChange = f }
