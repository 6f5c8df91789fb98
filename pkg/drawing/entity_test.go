/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_EntityType_String(t *testing.T) {
	require := require.New(t)

	require.Equal("EntityType_Line", EntityType_Line.String())
	require.Equal("EntityType_null", EntityType_null.String())
	require.Equal("EntityType(255)", EntityType(255).String())
}

func Test_Entity_Defaults(t *testing.T) {
	require := require.New(t)

	line := NewLine(Vector3{}, Vector3{X: 1})

	require.Equal(EntityType_Line, line.Type())
	require.Equal(DefaultLayerName, line.Layer().Name())
	require.Equal(ByLayerLinetypeName, line.Linetype().Name())
	require.True(line.Color().IsByLayer())
	require.True(line.IsVisible())
	require.Equal(1.0, line.LinetypeScale())
	require.Equal(UnitZ, line.Normal())
	require.NotNil(line.XData())
	require.False(line.HasReactors())
}

func Test_Entity_Setters(t *testing.T) {
	require := require.New(t)

	circle := NewCircle(Vector3{}, 10)

	t.Run("must be ok to set properties", func(t *testing.T) {
		circle.SetColor(ColorFromIndex(1))
		circle.SetLinetypeScale(0.5)
		circle.SetVisible(false)

		require.Equal(int16(1), circle.Color().Index())
		require.Equal(0.5, circle.LinetypeScale())
		require.False(circle.IsVisible())
	})

	t.Run("panic if argument is invalid", func(t *testing.T) {
		require.Panics(func() { circle.SetLinetypeScale(0) })
		require.Panics(func() { circle.SetLinetypeScale(-1) })
		require.Panics(func() { circle.SetLayer(nil) })
		require.Panics(func() { circle.SetLinetype(nil) })
	})
}

func Test_Entity_Constructors(t *testing.T) {
	require := require.New(t)

	t.Run("panic if geometry is invalid", func(t *testing.T) {
		require.Panics(func() { NewCircle(Vector3{}, 0) })
		require.Panics(func() { NewArc(Vector3{}, -1, 0, 90) })
		require.Panics(func() { NewEllipse(Vector3{}, 0, 0) })
		require.Panics(func() { NewEllipse(Vector3{}, 1, 2) }) // minor > major
		require.Panics(func() { NewText("x", Vector3{}, 0) })
		require.Panics(func() { NewAttributeDefinition("", 2.5) })
		require.Panics(func() { NewAttributeDefinition("N", 0) })
		require.Panics(func() { NewInsert(nil, Vector3{}) })
		require.Panics(func() { NewAttribute(nil) })
		require.Panics(func() { NewImage(nil, Vector3{}, 1, 1) })
	})

	t.Run("must report serialization minimums", func(t *testing.T) {
		require.False(NewLwPolyline().IsWritable())
		require.False(NewLwPolyline(LwPolylineVertex{}).IsWritable())
		require.True(NewLwPolyline(LwPolylineVertex{}, LwPolylineVertex{Position: Vector2{X: 1}}).IsWritable())

		require.False(NewHatch(HatchPatternSolid()).IsWritable())
		require.True(NewHatch(HatchPatternSolid(), NewHatchBoundaryPath(NewCircle(Vector3{}, 1))).IsWritable())
	})
}

func Test_ValidTableName(t *testing.T) {
	require := require.New(t)

	t.Run("must accept regular names", func(t *testing.T) {
		for _, name := range []string{"0", "Walls", "my layer", "*Active", "*Model_Space", "*Paper_Space0", "*D1", "Слой"} {
			ok, err := ValidTableName(name)
			require.True(ok, name)
			require.NoError(err)
		}
	})

	t.Run("must reject empty and malformed names", func(t *testing.T) {
		ok, err := ValidTableName("")
		require.False(ok)
		require.ErrorIs(err, ErrMissedError)

		for _, name := range []string{`a\b`, "a<b", "a>b", "a/b", "a?b", `a"b`, "a:b", "a;b", "a*b", "a|b", "a,b", "a=b", "a`b"} {
			ok, err := ValidTableName(name)
			require.False(ok, name)
			require.ErrorIs(err, ErrInvalidError)
		}
	})
}

func Test_AciColor(t *testing.T) {
	require := require.New(t)

	t.Run("must be ok to build from index", func(t *testing.T) {
		c := ColorFromIndex(42)
		require.Equal(int16(42), c.Index())
		require.False(c.IsByLayer())
		require.False(c.IsByBlock())
	})

	t.Run("must carry the symbolic colors", func(t *testing.T) {
		require.True(ColorByLayer().IsByLayer())
		require.True(ColorByBlock().IsByBlock())
	})

	t.Run("panic if index is out of range", func(t *testing.T) {
		require.Panics(func() { ColorFromIndex(0) })
		require.Panics(func() { ColorFromIndex(256) })
	})
}

func Test_Dimension_Measurement(t *testing.T) {
	require := require.New(t)

	t.Run("aligned measures the straight distance", func(t *testing.T) {
		d := NewAlignedDimension(Vector3{}, Vector3{X: 3, Y: 4}, 1)
		require.InDelta(5.0, d.Measurement(), 1e-9)
	})

	t.Run("linear projects onto the rotation direction", func(t *testing.T) {
		d := NewLinearDimension(Vector3{}, Vector3{X: 3, Y: 4}, 1, 0)
		require.InDelta(3.0, d.Measurement(), 1e-9)

		d.Rotation = 90
		require.InDelta(4.0, d.Measurement(), 1e-9)

		d.Rotation = 180
		require.InDelta(3.0, d.Measurement(), 1e-9)
	})
}
