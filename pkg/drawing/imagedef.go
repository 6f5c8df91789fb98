/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// ImageDefinition describes a raster file displayed by Image entities.
// For every attached image the definition holds a reactor record, the
// persisted back link from definition to image.
//
// # Implements:
//   - TableObject
type ImageDefinition struct {
	tableObject

	File string
	// size in pixels
	Width, Height int
	// document drawing units per pixel
	PixelSize float64

	reactors map[string]*ImageDefinitionReactor
}

// NewImageDefinition builds a detached definition of the raster file.
//
// # Panics:
//   - if name is empty or malformed,
//   - if file is empty,
//   - if width or height is not positive.
func NewImageDefinition(name, file string, width, height int) *ImageDefinition {
	if file == "" {
		panic(ErrMissed("image definition «%s» file", name))
	}
	if (width <= 0) || (height <= 0) {
		panic(ErrInvalid("image definition «%s» size %d×%d", name, width, height))
	}
	return &ImageDefinition{
		tableObject: makeTableObject(name, codeNameImageDef),
		File:        file,
		Width:       width,
		Height:      height,
		PixelSize:   1.0,
		reactors:    make(map[string]*ImageDefinitionReactor),
	}
}

// Reactors returns the reactor records keyed by image handle.
func (d *ImageDefinition) Reactors() map[string]*ImageDefinitionReactor {
	return d.reactors
}

// ImageDefinitionReactor links an image definition back to one image
// entity by handle.
//
// # Implements:
//   - DxfObject
type ImageDefinitionReactor struct {
	dxfObject

	imageHandle string
}

func newImageDefinitionReactor(imageHandle string) *ImageDefinitionReactor {
	return &ImageDefinitionReactor{
		dxfObject:   dxfObject{codeName: codeNameImageDefReactor},
		imageHandle: imageHandle,
	}
}

// ImageHandle returns the handle of the linked image entity.
func (r *ImageDefinitionReactor) ImageHandle() string { return r.imageHandle }
