/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "math"

// Vector3 is a point or direction in drawing space.
type Vector3 struct {
	X, Y, Z float64
}

// Vector2 is a point in object (OCS) space.
type Vector2 struct {
	X, Y float64
}

var (
	// UnitZ is the default entity normal.
	UnitZ = Vector3{0, 0, 1}
)

func (v Vector3) Add(u Vector3) Vector3 {
	return Vector3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

func (v Vector3) Sub(u Vector3) Vector3 {
	return Vector3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector2) Sub(u Vector2) Vector2 {
	return Vector2{v.X - u.X, v.Y - u.Y}
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
