/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Image places a raster image definition in the drawing. Attaching an
// image interns its definition and lazily creates the reactor record
// linking the definition back to the image by handle.
//
// # Implements:
//   - Entity
type Image struct {
	entityObject

	Position Vector3
	// displayed size in drawing units
	Width, Height float64
	Rotation      float64
	Brightness    int
	Contrast      int
	Fade          int
	ShowClipping  bool

	definition *ImageDefinition
}

// NewImage places definition at position with the given display size.
//
// # Panics:
//   - if definition is nil (ErrMissedError),
//   - if width or height is not positive.
func NewImage(definition *ImageDefinition, position Vector3, width, height float64) *Image {
	if definition == nil {
		panic(ErrMissed("image definition"))
	}
	if (width <= 0) || (height <= 0) {
		panic(ErrInvalid("image size %f×%f must be positive", width, height))
	}
	return &Image{
		entityObject: makeEntityObject(EntityType_Image, codeNameImage),
		Position:     position,
		Width:        width,
		Height:       height,
		Brightness:   50,
		Contrast:     50,
		definition:   definition,
	}
}

// Definition returns the raster definition of the image.
func (img *Image) Definition() *ImageDefinition { return img.definition }

// Underlay places an external DGN, DWF or PDF definition in the
// drawing. The attach state machine picks the definition table matching
// the underlay subtype.
//
// # Implements:
//   - Entity
type Underlay struct {
	entityObject

	Position Vector3
	Scale    Vector3
	Rotation float64
	Contrast int
	Fade     int

	definition *UnderlayDefinition
}

// NewUnderlay places definition at position.
//
// # Panics:
//   - if definition is nil (ErrMissedError).
func NewUnderlay(definition *UnderlayDefinition, position Vector3) *Underlay {
	if definition == nil {
		panic(ErrMissed("underlay definition"))
	}
	codeName := codeNameUnderlayDgn
	switch definition.Type() {
	case UnderlayDwf:
		codeName = codeNameUnderlayDwf
	case UnderlayPdf:
		codeName = codeNameUnderlayPdf
	}
	return &Underlay{
		entityObject: makeEntityObject(EntityType_Underlay, codeName),
		Position:     position,
		Scale:        Vector3{1, 1, 1},
		Contrast:     100,
		definition:   definition,
	}
}

// Definition returns the external file definition of the underlay.
func (u *Underlay) Definition() *UnderlayDefinition { return u.definition }
