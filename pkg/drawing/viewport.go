/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Viewport is a paper space window into model space, optionally
// clipped by a boundary entity. The boundary is attached together with
// the viewport and records the viewport as its reactor.
//
// # Implements:
//   - Entity
type Viewport struct {
	entityObject

	Center     Vector3
	Width      float64
	Height     float64
	ViewCenter Vector2
	ViewHeight float64

	clippingBoundary Entity
}

// NewViewport builds a rectangular viewport.
//
// # Panics:
//   - if width or height is not positive.
func NewViewport(center Vector3, width, height float64) *Viewport {
	if (width <= 0) || (height <= 0) {
		panic(ErrInvalid("viewport size %f×%f must be positive", width, height))
	}
	return &Viewport{
		entityObject: makeEntityObject(EntityType_Viewport, codeNameViewport),
		Center:       center,
		Width:        width,
		Height:       height,
		ViewHeight:   height,
	}
}

// ClippingBoundary returns the clipping entity, nil for a rectangular
// viewport.
func (vp *Viewport) ClippingBoundary() Entity { return vp.clippingBoundary }

// SetClippingBoundary assigns the clipping entity. Only legal while the
// viewport is detached; the attach state machine adopts the boundary.
//
// # Panics:
//   - if the viewport is attached (ErrInvalidError),
//   - if boundary is owned elsewhere (ErrInvalidError).
func (vp *Viewport) SetClippingBoundary(boundary Entity) {
	if vp.Owner() != nil {
		panic(ErrInvalid("cannot replace the clipping boundary of an attached viewport"))
	}
	if (boundary != nil) && (boundary.Owner() != nil) {
		panic(ErrInvalid("viewport clipping boundary already belongs to a block"))
	}
	vp.clippingBoundary = boundary
}

// Wipeout blanks the area bounded by its vertexes.
//
// # Implements:
//   - Entity
type Wipeout struct {
	entityObject

	Vertexes  []Vector2
	Elevation float64
}

// NewWipeout builds a wipeout over the closed contour vertexes.
//
// # Panics:
//   - if fewer than three vertexes are given (ErrInvalidError).
func NewWipeout(vertexes ...Vector2) *Wipeout {
	if len(vertexes) < 3 {
		panic(ErrInvalid("wipeout needs at least three vertexes, got %d", len(vertexes)))
	}
	return &Wipeout{
		entityObject: makeEntityObject(EntityType_Wipeout, codeNameWipeout),
		Vertexes:     vertexes,
	}
}
