/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// View is a stored named view of the drawing.
//
// # Implements:
//   - TableObject
type View struct {
	tableObject

	Target    Vector3
	Direction Vector3
	Height    float64
	Width     float64
	Fov       float64
}

// NewView builds a detached view.
//
// # Panics:
//   - if name is empty or malformed.
func NewView(name string) *View {
	return &View{
		tableObject: makeTableObject(name, codeNameView),
		Direction:   UnitZ,
		Height:      1.0,
		Width:       1.0,
		Fov:         40.0,
	}
}
