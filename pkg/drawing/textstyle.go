/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// TextStyle describes how text entities render: font, fixed height (0
// for annotative), width factor and oblique angle.
//
// # Implements:
//   - TableObject
type TextStyle struct {
	tableObject

	FontFile     string
	Height       float64
	WidthFactor  float64
	ObliqueAngle float64
	IsBackward   bool
	IsUpsideDown bool
	IsVertical   bool
}

// NewTextStyle builds a detached text style over fontFile.
//
// # Panics:
//   - if name is empty or malformed,
//   - if fontFile is empty.
func NewTextStyle(name, fontFile string) *TextStyle {
	if fontFile == "" {
		panic(ErrMissed("text style «%s» font file", name))
	}
	return &TextStyle{
		tableObject: makeTableObject(name, codeNameTextStyle),
		FontFile:    fontFile,
		WidthFactor: 1.0,
	}
}
