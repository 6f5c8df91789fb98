/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Attach_Text(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	text := NewText("hello", Vector3{}, 2.5)
	text.SetStyle(NewTextStyle("Narrow", "simplex.shx"))

	doc.AddEntity(text)

	t.Run("must intern the text style", func(t *testing.T) {
		require.True(doc.TextStyles.Contains("Narrow"))
		narrow, _ := doc.TextStyles.Item("Narrow")
		require.Same(narrow, text.Style())
		require.Equal([]DxfObject{text}, doc.TextStyles.References("Narrow"))
	})

	t.Run("must rebalance on style reassignment", func(t *testing.T) {
		standard, _ := doc.TextStyles.Item(DefaultTextStyleName)
		text.SetStyle(standard)

		require.Empty(doc.TextStyles.References("Narrow"))
		require.Equal([]DxfObject{text}, doc.TextStyles.References(DefaultTextStyleName))
		require.True(doc.TextStyles.RemoveByName("Narrow"))
	})

	t.Run("must release the style on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(text))
		require.Empty(doc.TextStyles.References(DefaultTextStyleName))
	})
}

func Test_Attach_Insert(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	frame := NewBlock("Frame")
	frame.Entities().Add(NewLine(Vector3{}, Vector3{X: 100}))
	frame.AttributeDefinitions().Add("N", NewAttributeDefinition("N", 2.5))

	ins := NewInsert(frame, Vector3{X: 10})
	doc.AddEntity(ins)

	t.Run("must intern the definition block", func(t *testing.T) {
		require.True(doc.Blocks.Contains("Frame"))
		require.Equal([]DxfObject{ins}, doc.Blocks.References("Frame"))
		require.Same(doc, frame.Document())
	})

	t.Run("must register the carried attributes", func(t *testing.T) {
		require.Len(ins.Attributes(), 1)
		a, ok := ins.Attribute("N")
		require.True(ok)
		require.NotEmpty(a.Handle())
		require.Same(ins, a.Owner())
		// referenced by the attribute and by the block's attdef
		require.Contains(doc.TextStyles.References(DefaultTextStyleName), DxfObject(a))
		require.Len(doc.TextStyles.References(DefaultTextStyleName), 2)
	})

	t.Run("must refuse to remove the referenced block", func(t *testing.T) {
		require.False(doc.Blocks.Remove(frame))
	})

	t.Run("must release everything on detach", func(t *testing.T) {
		a, _ := ins.Attribute("N")

		require.True(doc.RemoveEntity(ins))

		require.Empty(doc.Blocks.References("Frame"))
		require.Empty(a.Handle())
		require.Nil(a.Owner())
		require.NotContains(doc.TextStyles.References(DefaultTextStyleName), DxfObject(a))

		require.True(doc.Blocks.Remove(frame))
		require.Empty(doc.TextStyles.References(DefaultTextStyleName))
	})
}

func Test_Attach_Hatch(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()
	model, _ := doc.Blocks.Item(ModelSpaceBlockName)

	contour := NewCircle(Vector3{}, 10)
	hatch := NewHatch(HatchPatternSolid(), NewHatchBoundaryPath(contour))

	doc.AddEntity(hatch)

	t.Run("must adopt the boundary entities", func(t *testing.T) {
		require.True(model.Entities().Contains(contour))
		require.NotEmpty(contour.Handle())
		require.Same(model, contour.Owner())
		require.Equal([]DxfObject{hatch}, contour.Reactors())
	})

	t.Run("must pin the boundary while the hatch lives", func(t *testing.T) {
		require.False(doc.RemoveEntity(contour))
		require.True(model.Entities().Contains(contour))
	})

	t.Run("must release the boundary on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(hatch))

		require.False(model.Entities().Contains(contour))
		require.Empty(contour.Handle())
		require.Nil(contour.Owner())
		require.False(contour.HasReactors())
	})

	t.Run("panic if a boundary entity is owned elsewhere", func(t *testing.T) {
		taken := NewCircle(Vector3{}, 1)
		doc.AddEntity(taken)
		require.Panics(func() {
			doc.AddEntity(NewHatch(HatchPatternSolid(), NewHatchBoundaryPath(taken)))
		})
	})
}

func Test_Attach_Dimension(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	dim := NewAlignedDimension(Vector3{}, Vector3{X: 50}, 5)
	style := NewDimensionStyle("Arch")
	style.SetTextStyle(NewTextStyle("DimText", "romans.shx"))
	dim.SetStyle(style)
	dim.StyleOverrides[DimOverrideTextStyle] = NewTextStyle("DimText", "romans.shx")
	dim.StyleOverrides[DimOverrideScale] = 2.0

	doc.AddEntity(dim)

	t.Run("must intern the style cascade", func(t *testing.T) {
		require.True(doc.DimensionStyles.Contains("Arch"))
		require.Equal([]DxfObject{dim}, doc.DimensionStyles.References("Arch"))

		// the style pulled its own text style in
		require.True(doc.TextStyles.Contains("DimText"))
		arch, _ := doc.DimensionStyles.Item("Arch")
		dimText, _ := doc.TextStyles.Item("DimText")
		require.Same(dimText, arch.TextStyle())
		require.Contains(doc.TextStyles.References("DimText"), DxfObject(arch))
	})

	t.Run("must intern table object overrides", func(t *testing.T) {
		dimText, _ := doc.TextStyles.Item("DimText")
		require.Same(dimText, dim.StyleOverrides[DimOverrideTextStyle])
		require.Contains(doc.TextStyles.References("DimText"), DxfObject(dim))
		require.Equal(2.0, dim.StyleOverrides[DimOverrideScale])
	})

	t.Run("must release the cascade on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(dim))

		require.Empty(doc.DimensionStyles.References("Arch"))
		require.NotContains(doc.TextStyles.References("DimText"), DxfObject(dim))

		require.True(doc.DimensionStyles.RemoveByName("Arch"))
		require.True(doc.TextStyles.RemoveByName("DimText"))
	})
}

func Test_Attach_MLine(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	ml := NewMLine(Vector3{}, Vector3{X: 10}, Vector3{X: 10, Y: 10})
	doc.AddEntity(ml)

	t.Run("must intern the multiline style", func(t *testing.T) {
		standard, _ := doc.MLineStyles.Item(DefaultMLineStyleName)
		require.Same(standard, ml.Style())
		require.Equal([]DxfObject{ml}, doc.MLineStyles.References(DefaultMLineStyleName))
	})

	t.Run("must release it on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(ml))
		require.Empty(doc.MLineStyles.References(DefaultMLineStyleName))
	})
}

func Test_Attach_Leader(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()
	model, _ := doc.Blocks.Item(ModelSpaceBlockName)

	note := NewMText("see detail", Vector3{X: 12, Y: 8}, 2.5)
	leader := NewLeader(Vector2{}, Vector2{X: 10, Y: 8})
	leader.SetAnnotation(note)

	doc.AddEntity(leader)

	t.Run("must adopt the annotation", func(t *testing.T) {
		require.True(model.Entities().Contains(note))
		require.Equal([]DxfObject{leader}, note.Reactors())
		require.False(doc.RemoveEntity(note))
	})

	t.Run("panic if annotation changes while attached", func(t *testing.T) {
		require.Panics(func() { leader.SetAnnotation(NewMText("x", Vector3{}, 1)) })
	})

	t.Run("must release the annotation on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(leader))
		require.False(model.Entities().Contains(note))
		require.False(note.HasReactors())
	})
}

func Test_Attach_Image(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	def := NewImageDefinition("SitePlan", "site.png", 640, 480)
	img := NewImage(def, Vector3{}, 64, 48)

	doc.AddEntity(img)

	t.Run("must intern the definition and its reactor", func(t *testing.T) {
		require.True(doc.ImageDefinitions.Contains("SitePlan"))
		require.Equal([]DxfObject{img}, doc.ImageDefinitions.References("SitePlan"))

		r, ok := def.Reactors()[img.Handle()]
		require.True(ok)
		require.Equal(img.Handle(), r.ImageHandle())
		require.NotEmpty(r.Handle())
		require.Same(def, r.Owner())

		o, ok := doc.AddedObject(r.Handle())
		require.True(ok)
		require.Same(r, o.(*ImageDefinitionReactor))
	})

	t.Run("must drop the reactor on detach", func(t *testing.T) {
		r := def.Reactors()[img.Handle()]

		require.True(doc.RemoveEntity(img))

		require.Empty(doc.ImageDefinitions.References("SitePlan"))
		_, ok := doc.AddedObject(r.Handle())
		require.False(ok)
		require.True(doc.ImageDefinitions.RemoveByName("SitePlan"))
	})
}

func Test_Attach_Underlay(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	pdf := NewUnderlay(NewUnderlayDefinition("Sheet", "plan.pdf", UnderlayPdf), Vector3{})
	dgn := NewUnderlay(NewUnderlayDefinition("Survey", "field.dgn", UnderlayDgn), Vector3{})
	doc.AddEntity(pdf)
	doc.AddEntity(dgn)

	t.Run("must route each definition to its table", func(t *testing.T) {
		require.True(doc.UnderlayPdfDefinitions.Contains("Sheet"))
		require.True(doc.UnderlayDgnDefinitions.Contains("Survey"))
		require.False(doc.UnderlayDwfDefinitions.Contains("Sheet"))
		require.Equal([]DxfObject{pdf}, doc.UnderlayPdfDefinitions.References("Sheet"))
	})

	t.Run("must release on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(pdf))
		require.Empty(doc.UnderlayPdfDefinitions.References("Sheet"))
	})
}

func Test_Attach_Viewport(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()
	doc.Layouts.Add(NewLayout("Sheet1"))
	require.True(doc.SetActiveLayout("Sheet1"))
	paper, _ := doc.Blocks.Item(PaperSpaceBlockName)

	boundary := NewLwPolyline(
		LwPolylineVertex{Position: Vector2{}},
		LwPolylineVertex{Position: Vector2{X: 100}},
		LwPolylineVertex{Position: Vector2{X: 100, Y: 50}},
	)
	vp := NewViewport(Vector3{X: 50, Y: 25}, 100, 50)
	vp.SetClippingBoundary(boundary)

	doc.AddEntity(vp)

	t.Run("must adopt the clipping boundary", func(t *testing.T) {
		require.True(paper.Entities().Contains(boundary))
		require.Equal([]DxfObject{vp}, boundary.Reactors())
		require.False(doc.RemoveEntity(boundary))
	})

	t.Run("must release it on detach", func(t *testing.T) {
		require.True(doc.RemoveEntity(vp))
		require.False(paper.Entities().Contains(boundary))
		require.False(boundary.HasReactors())
	})
}

func Test_Attach_Unsupported(t *testing.T) {
	require := require.New(t)

	doc := NewDocument()

	t.Run("panic if entity kind is unknown", func(t *testing.T) {
		type rogue struct{ entityObject }
		e := &rogue{makeEntityObject(EntityType_count, "ROGUE")}
		require.Panics(func() { doc.AddEntity(e) })
	})
}
