/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// HatchBoundaryPath is one closed contour of a hatch, defined by edge
// entities (lines, arcs, circles, lightweight polylines).
type HatchBoundaryPath struct {
	Entities []Entity
}

// NewHatchBoundaryPath builds a contour over the given edge entities.
//
// # Panics:
//   - if no edges are given (ErrMissedError).
func NewHatchBoundaryPath(edges ...Entity) *HatchBoundaryPath {
	if len(edges) == 0 {
		panic(ErrMissed("hatch boundary edges"))
	}
	return &HatchBoundaryPath{Entities: edges}
}

// HatchPattern names the fill pattern of a hatch.
type HatchPattern struct {
	Name  string
	Angle float64
	Scale float64
}

// HatchPatternSolid is the solid fill pattern.
func HatchPatternSolid() HatchPattern {
	return HatchPattern{Name: "SOLID", Scale: 1.0}
}

// Hatch fills an area bounded by one or more contours. Attaching a
// hatch attaches its boundary entities to the same block and records
// the hatch as their reactor, so a contour entity cannot be removed
// while the hatch uses it.
//
// A hatch without boundary paths is legal in memory but is skipped at
// serialization.
//
// # Implements:
//   - Entity
type Hatch struct {
	entityObject

	Pattern   HatchPattern
	Elevation float64

	BoundaryPaths []*HatchBoundaryPath
}

func NewHatch(pattern HatchPattern, paths ...*HatchBoundaryPath) *Hatch {
	return &Hatch{
		entityObject:  makeEntityObject(EntityType_Hatch, codeNameHatch),
		Pattern:       pattern,
		BoundaryPaths: paths,
	}
}

// IsWritable reports whether the hatch satisfies the geometric minimum
// for serialization.
func (h *Hatch) IsWritable() bool {
	return len(h.BoundaryPaths) > 0
}
