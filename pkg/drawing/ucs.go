/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// UCS is a user coordinate system: an origin and two in-plane axes.
//
// # Implements:
//   - TableObject
type UCS struct {
	tableObject

	Origin Vector3
	XAxis  Vector3
	YAxis  Vector3
}

// NewUCS builds a detached world-aligned coordinate system.
//
// # Panics:
//   - if name is empty or malformed.
func NewUCS(name string) *UCS {
	return &UCS{
		tableObject: makeTableObject(name, codeNameUcs),
		XAxis:       Vector3{X: 1},
		YAxis:       Vector3{Y: 1},
	}
}
