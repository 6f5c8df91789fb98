/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// VPort is a model space viewport configuration. New documents carry
// the reserved «*Active» configuration.
//
// # Implements:
//   - TableObject
type VPort struct {
	tableObject

	ViewCenter    Vector2
	ViewHeight    float64
	AspectRatio   float64
	SnapBasePoint Vector2
	SnapSpacing   Vector2
	GridSpacing   Vector2
	ShowGrid      bool
	SnapMode      bool
}

// NewVPort builds a detached viewport configuration.
//
// # Panics:
//   - if name is empty or malformed.
func NewVPort(name string) *VPort {
	return &VPort{
		tableObject: makeTableObject(name, codeNameVPort),
		ViewHeight:  10.0,
		AspectRatio: 1.0,
		SnapSpacing: Vector2{X: 0.5, Y: 0.5},
		GridSpacing: Vector2{X: 10, Y: 10},
		ShowGrid:    true,
	}
}
