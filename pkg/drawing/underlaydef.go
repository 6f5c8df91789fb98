/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "fmt"

// UnderlayType selects which definition table an underlay resolves
// through.
type UnderlayType uint8

const (
	UnderlayDgn UnderlayType = iota
	UnderlayDwf
	UnderlayPdf
)

func (t UnderlayType) String() string {
	switch t {
	case UnderlayDgn:
		return "DGN"
	case UnderlayDwf:
		return "DWF"
	case UnderlayPdf:
		return "PDF"
	}
	return fmt.Sprintf("UnderlayType(%d)", uint8(t))
}

// UnderlayDefinition describes an external DGN, DWF or PDF file
// referenced by Underlay entities. Each underlay type resolves through
// its own, effectively unbounded, definition table.
//
// # Implements:
//   - TableObject
type UnderlayDefinition struct {
	tableObject

	File string
	// sheet or page inside the external file
	Page string

	utype UnderlayType
}

// NewUnderlayDefinition builds a detached definition of the external
// file.
//
// # Panics:
//   - if name is empty or malformed,
//   - if file is empty.
func NewUnderlayDefinition(name, file string, utype UnderlayType) *UnderlayDefinition {
	if file == "" {
		panic(ErrMissed("underlay definition «%s» file", name))
	}
	codeName := codeNameUnderlayDgnDef
	switch utype {
	case UnderlayDwf:
		codeName = codeNameUnderlayDwfDef
	case UnderlayPdf:
		codeName = codeNameUnderlayPdfDef
	}
	return &UnderlayDefinition{
		tableObject: makeTableObject(name, codeName),
		File:        file,
		Page:        "1",
		utype:       utype,
	}
}

func (d *UnderlayDefinition) Type() UnderlayType { return d.utype }
