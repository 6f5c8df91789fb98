/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// ApplicationRegistry names an application that attaches extended data
// to objects. Every XData entry keys on a registered application.
//
// # Implements:
//   - TableObject
type ApplicationRegistry struct {
	tableObject
}

// NewApplicationRegistry builds a detached application registry.
//
// # Panics:
//   - if name is empty or malformed.
func NewApplicationRegistry(name string) *ApplicationRegistry {
	return &ApplicationRegistry{
		tableObject: makeTableObject(name, codeNameAppReg),
	}
}
