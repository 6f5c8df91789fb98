/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewDocument(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	t.Run("must carry the reserved defaults", func(t *testing.T) {
		for _, d := range []struct {
			name  string
			table interface {
				Contains(string) bool
				Count() int
			}
		}{
			{DefaultLayerName, doc.Layers},
			{DefaultTextStyleName, doc.TextStyles},
			{DefaultDimStyleName, doc.DimensionStyles},
			{DefaultMLineStyleName, doc.MLineStyles},
			{DefaultAppRegName, doc.ApplicationRegistries},
			{DefaultLayoutName, doc.Layouts},
			{DefaultVPortName, doc.VPorts},
		} {
			require.True(d.table.Contains(d.name), "default «%s»", d.name)
			require.Equal(1, d.table.Count())
		}

		require.Equal(3, doc.Linetypes.Count())
		require.True(doc.Linetypes.Contains(ByLayerLinetypeName))
		require.True(doc.Linetypes.Contains(ByBlockLinetypeName))
		require.True(doc.Linetypes.Contains(ContinuousLinetypeName))

		require.Equal(2, doc.Blocks.Count())
		require.True(doc.Blocks.Contains(ModelSpaceBlockName))
		require.True(doc.Blocks.Contains(PaperSpaceBlockName))
	})

	t.Run("must mark every default reserved", func(t *testing.T) {
		doc.Layers.Enum(func(l *Layer) { require.True(l.IsReserved()) })
		doc.Linetypes.Enum(func(lt *Linetype) { require.True(lt.IsReserved()) })
		doc.Blocks.Enum(func(b *Block) { require.True(b.IsReserved()) })
	})

	t.Run("must report zero references for every default", func(t *testing.T) {
		require.Empty(doc.Linetypes.References(ContinuousLinetypeName))
		require.Empty(doc.Linetypes.References(ByLayerLinetypeName))
		require.Empty(doc.Linetypes.References(ByBlockLinetypeName))
		require.Empty(doc.Layers.References(DefaultLayerName))
		require.Empty(doc.TextStyles.References(DefaultTextStyleName))
		require.Empty(doc.Blocks.References(ModelSpaceBlockName))
	})

	t.Run("must point the defaults at sibling defaults", func(t *testing.T) {
		layer0, ok := doc.Layers.Item(DefaultLayerName)
		require.True(ok)
		continuous, _ := doc.Linetypes.Item(ContinuousLinetypeName)
		require.Same(continuous, layer0.Linetype())

		dimStyle, _ := doc.DimensionStyles.Item(DefaultDimStyleName)
		textStyle, _ := doc.TextStyles.Item(DefaultTextStyleName)
		require.Same(textStyle, dimStyle.TextStyle())
	})

	t.Run("must make the model layout active", func(t *testing.T) {
		layout := doc.ActiveLayout()
		require.NotNil(layout)
		require.True(layout.IsModelSpace())

		model, _ := doc.Blocks.Item(ModelSpaceBlockName)
		require.Same(model, layout.AssociatedBlock())
		require.Same(layout, model.Record().Layout())
	})

	t.Run("must register every default in the handle index", func(t *testing.T) {
		doc.Layers.Enum(func(l *Layer) {
			o, ok := doc.AddedObject(l.Handle())
			require.True(ok)
			require.Same(l, o.(*Layer))
		})
	})
}

func Test_Document_Entities(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	line := NewLine(Vector3{}, Vector3{X: 10})

	t.Run("must be ok to add an entity", func(t *testing.T) {
		doc.AddEntity(line)

		require.NotEmpty(line.Handle())
		require.Len(doc.Entities(), 1)

		model, _ := doc.Blocks.Item(ModelSpaceBlockName)
		require.Same(model, line.Owner())

		o, ok := doc.AddedObject(line.Handle())
		require.True(ok)
		require.Same(line, o.(*Line))
	})

	t.Run("must intern the entity layer and linetype", func(t *testing.T) {
		layer0, _ := doc.Layers.Item(DefaultLayerName)
		require.Same(layer0, line.Layer())
		require.Equal([]DxfObject{line}, doc.Layers.References(DefaultLayerName))

		byLayer, _ := doc.Linetypes.Item(ByLayerLinetypeName)
		require.Same(byLayer, line.Linetype())
		require.Equal([]DxfObject{line}, doc.Linetypes.References(ByLayerLinetypeName))
	})

	t.Run("must rebalance references on layer reassignment", func(t *testing.T) {
		walls := NewLayer("Walls")
		line.SetLayer(walls)

		require.Same(walls, line.Layer())
		require.True(doc.Layers.Contains("Walls"))
		require.Empty(doc.Layers.References(DefaultLayerName))
		require.Equal([]DxfObject{line}, doc.Layers.References("Walls"))
	})

	t.Run("must commit the canonical instance on reassignment", func(t *testing.T) {
		line.SetLayer(NewLayer("walls")) // same name, different instance
		walls, _ := doc.Layers.Item("Walls")
		require.Same(walls, line.Layer())
		require.Equal(1, len(doc.Layers.References("Walls")))
	})

	t.Run("must refuse to remove a referenced layer", func(t *testing.T) {
		walls, _ := doc.Layers.Item("Walls")
		require.False(doc.Layers.Remove(walls))
		require.True(doc.Layers.Contains("Walls"))
	})

	t.Run("must be ok to remove an entity", func(t *testing.T) {
		require.True(doc.RemoveEntity(line))

		require.Empty(line.Handle())
		require.Nil(line.Owner())
		require.Empty(doc.Entities())
		require.Empty(doc.Layers.References("Walls"))

		walls, _ := doc.Layers.Item("Walls")
		require.True(doc.Layers.Remove(walls))
	})

	t.Run("must silently refuse foreign removal", func(t *testing.T) {
		require.False(doc.RemoveEntity(nil))
		require.False(doc.RemoveEntity(NewLine(Vector3{}, Vector3{X: 1})))

		other := NewDocument()
		stranger := NewLine(Vector3{}, Vector3{X: 1})
		other.AddEntity(stranger)
		require.False(doc.RemoveEntity(stranger))
		require.True(other.RemoveEntity(stranger))
	})

	t.Run("panic if added entity is nil or owned", func(t *testing.T) {
		require.Panics(func() { doc.AddEntity(nil) })

		point := NewPoint(Vector3{})
		doc.AddEntity(point)
		require.Panics(func() { doc.AddEntity(point) })
		require.True(doc.RemoveEntity(point))
	})
}

func Test_Document_Handles(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()
	seed := doc.NumHandles()
	require.Greater(seed, int64(0)) // defaults consumed handles

	t.Run("must assign unique ascending handles", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			l := NewLine(Vector3{}, Vector3{X: 1})
			doc.AddEntity(l)
			require.False(seen[l.Handle()])
			seen[l.Handle()] = true
		}
		require.Equal(seed+10, doc.NumHandles())
	})

	t.Run("must be ok to raise the handle seed", func(t *testing.T) {
		doc.RaiseHandleSeed(0x1000)
		require.Equal(int64(0x1000), doc.NumHandles())

		doc.RaiseHandleSeed(1) // never backwards
		require.Equal(int64(0x1000), doc.NumHandles())

		l := NewLine(Vector3{}, Vector3{X: 1})
		doc.AddEntity(l)
		require.Equal("1001", l.Handle())
	})

	t.Run("must keep a handle restored from a stream", func(t *testing.T) {
		l := NewLayer("Restored")
		RestoreHandle(l, "AF")
		doc.Layers.Add(l)
		require.Equal("AF", l.Handle())

		o, ok := doc.AddedObject("AF")
		require.True(ok)
		require.Same(l, o.(*Layer))
	})

	t.Run("panic if a restored handle collides", func(t *testing.T) {
		dup := NewLayer("Colliding")
		RestoreHandle(dup, "AF")
		require.Panics(func() { doc.Layers.Add(dup) })
	})
}

func Test_Document_Layouts(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	t.Run("must link a fresh layout to the free paper space", func(t *testing.T) {
		sheet := doc.Layouts.Add(NewLayout("Sheet1"))

		paper, _ := doc.Blocks.Item(PaperSpaceBlockName)
		require.Same(paper, sheet.AssociatedBlock())
		require.Same(sheet, paper.Record().Layout())
		require.Equal([]DxfObject{sheet}, doc.Blocks.References(PaperSpaceBlockName))
	})

	t.Run("must create paper spaces once the seeded one is taken", func(t *testing.T) {
		sheet2 := doc.Layouts.Add(NewLayout("Sheet2"))

		block := sheet2.AssociatedBlock()
		require.Equal(PaperSpaceBlockName+"0", block.Name())
		require.True(doc.Blocks.Contains(PaperSpaceBlockName + "0"))
	})

	t.Run("must route entities through the active layout", func(t *testing.T) {
		require.True(doc.SetActiveLayout("Sheet1"))
		circle := NewCircle(Vector3{}, 5)
		doc.AddEntity(circle)

		paper, _ := doc.Blocks.Item(PaperSpaceBlockName)
		require.True(paper.Entities().Contains(circle))

		model, _ := doc.Blocks.Item(ModelSpaceBlockName)
		require.Zero(model.Entities().Len())

		require.False(doc.SetActiveLayout("unknown"))
		require.True(doc.SetActiveLayout(DefaultLayoutName))
	})

	t.Run("must release the paper space with its layout", func(t *testing.T) {
		sheet2, _ := doc.Layouts.Item("Sheet2")
		block := sheet2.AssociatedBlock()

		require.True(doc.Layouts.Remove(sheet2))
		require.Empty(doc.Blocks.References(block.Name()))
		require.Nil(block.Record().Layout())
	})

	t.Run("must refuse to remove the model layout", func(t *testing.T) {
		model, _ := doc.Layouts.Item(DefaultLayoutName)
		require.False(doc.Layouts.Remove(model))
	})
}
