/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// LwPolylineVertex is one vertex of a lightweight polyline. A non-zero
// bulge bends the following segment into an arc.
type LwPolylineVertex struct {
	Position   Vector2
	StartWidth float64
	EndWidth   float64
	Bulge      float64
}

// LwPolyline is a lightweight 2D polyline.
//
// A polyline with fewer than two vertexes is legal in memory — callers
// may build it up vertex by vertex — but is skipped at serialization.
//
// # Implements:
//   - Entity
type LwPolyline struct {
	entityObject

	Vertexes  []LwPolylineVertex
	IsClosed  bool
	Elevation float64
	Thickness float64
}

func NewLwPolyline(vertexes ...LwPolylineVertex) *LwPolyline {
	return &LwPolyline{
		entityObject: makeEntityObject(EntityType_LwPolyline, codeNameLwPolyline),
		Vertexes:     vertexes,
	}
}

// IsWritable reports whether the polyline satisfies the geometric
// minimum for serialization.
func (p *LwPolyline) IsWritable() bool {
	return len(p.Vertexes) >= 2
}

// Solid is a filled triangle or quadrilateral.
//
// # Implements:
//   - Entity
type Solid struct {
	entityObject

	V1, V2, V3, V4 Vector2
	Elevation      float64
	Thickness      float64
}

func NewSolid(v1, v2, v3, v4 Vector2) *Solid {
	return &Solid{
		entityObject: makeEntityObject(EntityType_Solid, codeNameSolid),
		V1:           v1, V2: v2, V3: v3, V4: v4,
	}
}

// Face3D is a three or four sided surface in space.
//
// # Implements:
//   - Entity
type Face3D struct {
	entityObject

	V1, V2, V3, V4 Vector3
	EdgeVisibility uint8
}

func NewFace3D(v1, v2, v3, v4 Vector3) *Face3D {
	return &Face3D{
		entityObject: makeEntityObject(EntityType_Face3D, codeNameFace3D),
		V1:           v1, V2: v2, V3: v3, V4: v4,
	}
}
