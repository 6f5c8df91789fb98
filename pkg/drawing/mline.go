/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// MLine is a multiline: parallel lines drawn along a vertex path,
// rendered through a multiline style.
//
// # Implements:
//   - Entity
type MLine struct {
	entityObject

	Vertexes []Vector3
	Scale    float64
	IsClosed bool

	style         *MLineStyle
	onStyleChange func(*MLineStyle) *MLineStyle
}

func NewMLine(vertexes ...Vector3) *MLine {
	return &MLine{
		entityObject: makeEntityObject(EntityType_MLine, codeNameMLine),
		Vertexes:     vertexes,
		Scale:        1.0,
		style:        NewMLineStyle(DefaultMLineStyleName),
	}
}

func (m *MLine) Style() *MLineStyle { return m.style }

// SetStyle reassigns the multiline style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (m *MLine) SetStyle(style *MLineStyle) {
	if style == nil {
		panic(ErrMissed("multiline style"))
	}
	if m.onStyleChange != nil {
		style = m.onStyleChange(style)
	}
	m.style = style
}

func (m *MLine) setStyleObserver(f func(*MLineStyle) *MLineStyle) { m.onStyleChange = f }
