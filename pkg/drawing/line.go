/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Line is a straight segment between two points.
//
// # Implements:
//   - Entity
type Line struct {
	entityObject

	Start     Vector3
	End       Vector3
	Thickness float64
}

func NewLine(start, end Vector3) *Line {
	return &Line{
		entityObject: makeEntityObject(EntityType_Line, codeNameLine),
		Start:        start,
		End:          end,
	}
}

// Point is a single position marker.
//
// # Implements:
//   - Entity
type Point struct {
	entityObject

	Position  Vector3
	Thickness float64
}

func NewPoint(position Vector3) *Point {
	return &Point{
		entityObject: makeEntityObject(EntityType_Point, codeNamePoint),
		Position:     position,
	}
}
