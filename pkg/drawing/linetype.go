/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// LinetypeSegment is one element of a linetype pattern. A positive
// length is a dash, a negative one a space, zero a dot. Text segments
// additionally reference a text style rendered along the line.
type LinetypeSegment struct {
	Length float64
	Text   string
	Style  *TextStyle
}

// Linetype is a dash-dot-space pattern shared by entities and layers.
//
// # Implements:
//   - TableObject
type Linetype struct {
	tableObject

	Description string
	Segments    []LinetypeSegment
}

// NewLinetype builds a detached continuous (no pattern) linetype.
//
// # Panics:
//   - if name is empty or malformed.
func NewLinetype(name string) *Linetype {
	return &Linetype{
		tableObject: makeTableObject(name, codeNameLinetype),
	}
}

// PatternLength returns the total length of one pattern repetition.
func (lt *Linetype) PatternLength() float64 {
	total := 0.0
	for _, s := range lt.Segments {
		if s.Length >= 0 {
			total += s.Length
		} else {
			total -= s.Length
		}
	}
	return total
}
