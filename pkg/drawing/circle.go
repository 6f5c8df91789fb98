/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Circle is a full circle around a center.
//
// # Implements:
//   - Entity
type Circle struct {
	entityObject

	Center    Vector3
	Radius    float64
	Thickness float64
}

// NewCircle builds a circle.
//
// # Panics:
//   - if radius is not positive.
func NewCircle(center Vector3, radius float64) *Circle {
	if radius <= 0 {
		panic(ErrInvalid("circle radius %f must be positive", radius))
	}
	return &Circle{
		entityObject: makeEntityObject(EntityType_Circle, codeNameCircle),
		Center:       center,
		Radius:       radius,
	}
}

// Arc is a circular arc, counter-clockwise from StartAngle to EndAngle
// in degrees.
//
// # Implements:
//   - Entity
type Arc struct {
	entityObject

	Center     Vector3
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Thickness  float64
}

// NewArc builds an arc.
//
// # Panics:
//   - if radius is not positive.
func NewArc(center Vector3, radius, startAngle, endAngle float64) *Arc {
	if radius <= 0 {
		panic(ErrInvalid("arc radius %f must be positive", radius))
	}
	return &Arc{
		entityObject: makeEntityObject(EntityType_Arc, codeNameArc),
		Center:       center,
		Radius:       radius,
		StartAngle:   startAngle,
		EndAngle:     endAngle,
	}
}

// Ellipse is a full or partial ellipse.
//
// # Implements:
//   - Entity
type Ellipse struct {
	entityObject

	Center     Vector3
	MajorAxis  float64
	MinorAxis  float64
	Rotation   float64
	StartAngle float64
	EndAngle   float64
}

// NewEllipse builds a full ellipse.
//
// # Panics:
//   - if an axis is not positive or the minor axis exceeds the major.
func NewEllipse(center Vector3, majorAxis, minorAxis float64) *Ellipse {
	if (majorAxis <= 0) || (minorAxis <= 0) {
		panic(ErrInvalid("ellipse axes %f×%f must be positive", majorAxis, minorAxis))
	}
	if minorAxis > majorAxis {
		panic(ErrInvalid("ellipse minor axis %f exceeds major axis %f", minorAxis, majorAxis))
	}
	return &Ellipse{
		entityObject: makeEntityObject(EntityType_Ellipse, codeNameEllipse),
		Center:       center,
		MajorAxis:    majorAxis,
		MinorAxis:    minorAxis,
		EndAngle:     360.0,
	}
}
