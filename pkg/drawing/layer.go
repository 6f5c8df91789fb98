/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Layer groups entities and supplies the properties they inherit «by
// layer»: color, linetype, lineweight, transparency.
//
// # Implements:
//   - TableObject
type Layer struct {
	tableObject

	Color        AciColor
	Lineweight   Lineweight
	Transparency Transparency
	IsVisible    bool
	IsFrozen     bool
	IsLocked     bool
	Plot         bool

	linetype         *Linetype
	onLinetypeChange func(*Linetype) *Linetype
}

// NewLayer builds a detached layer with default properties.
//
// # Panics:
//   - if name is empty or malformed.
func NewLayer(name string) *Layer {
	return &Layer{
		tableObject: makeTableObject(name, codeNameLayer),
		Color:       ColorFromIndex(7),
		Lineweight:  LineweightDefault,
		IsVisible:   true,
		Plot:        true,
		linetype:    NewLinetype(ContinuousLinetypeName),
	}
}

func (l *Layer) Linetype() *Linetype { return l.linetype }

// SetLinetype reassigns the layer linetype. While the layer is
// registered, the document interns the new linetype and the reference
// lists of both linetypes are updated; the committed value is the
// canonical table instance.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (l *Layer) SetLinetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("layer «%s» linetype", l.Name()))
	}
	if l.onLinetypeChange != nil {
		linetype = l.onLinetypeChange(linetype)
	}
	l.linetype = linetype
}

func (l *Layer) setLinetypeObserver(f func(*Linetype) *Linetype) { l.onLinetypeChange = f }
