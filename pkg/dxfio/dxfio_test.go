/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package dxfio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/dxf/pkg/drawing"
	"github.com/voedger/dxf/pkg/tagio"
)

// testDocument builds a drawing that exercises the persisted surface:
// custom resources, a block with an attribute definition, an insert,
// a second layout.
func testDocument() *drawing.Document {
	doc := drawing.NewDocument()
	doc.Comments = append(doc.Comments, "drawn by dxfio tests")

	walls := drawing.NewLayer("Walls")
	walls.Color = drawing.ColorFromIndex(5)
	doc.Layers.Add(walls)

	dashed := drawing.NewLinetype("Dashed")
	dashed.Description = "Dashed line"
	dashed.Segments = []drawing.LinetypeSegment{{Length: 0.5}, {Length: -0.25}}
	doc.Linetypes.Add(dashed)

	notes := doc.TextStyles.Add(drawing.NewTextStyle("Notes", "arial.ttf"))

	line := drawing.NewLine(drawing.Vector3{}, drawing.Vector3{X: 10, Y: 5})
	line.SetLayer(walls)
	line.SetLinetype(dashed)
	doc.AddEntity(line)

	circle := drawing.NewCircle(drawing.Vector3{X: 3, Y: 3}, 1.5)
	doc.AddEntity(circle)

	text := drawing.NewText("hello", drawing.Vector3{X: 1, Y: 1}, 2.5)
	text.SetStyle(notes)
	doc.AddEntity(text)

	poly := drawing.NewLwPolyline(
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 0, Y: 0}},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 4, Y: 0}, Bulge: 0.5},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 4, Y: 4}},
	)
	poly.IsClosed = true
	doc.AddEntity(poly)

	frame := drawing.NewBlock("Frame")
	frame.AttributeDefinitions().Add("NUMBER", drawing.NewAttributeDefinition("NUMBER", 1.0))
	frame.Entities().Add(drawing.NewLine(drawing.Vector3{}, drawing.Vector3{X: 1}))
	doc.Blocks.Add(frame)

	ins := drawing.NewInsert(frame, drawing.Vector3{X: 7, Y: 7})
	ins.Rotation = 45
	doc.AddEntity(ins)

	doc.Layouts.Add(drawing.NewLayout("Sheet"))

	return doc
}

func Test_RoundTrip(t *testing.T) {
	for _, binary := range []bool{false, true} {
		name := "text"
		if binary {
			name = "binary"
		}
		t.Run("must be ok to save and reload a "+name+" stream", func(t *testing.T) {
			require := require.New(t)

			src := testDocument()
			srcLine := src.Entities()[0].(*drawing.Line)

			buf := bytes.Buffer{}
			require.NoError(Save(&buf, src, binary))
			require.Equal(binary, tagio.IsBinary(buf.Bytes()))

			doc, err := Load(&buf)
			require.NoError(err)

			require.Equal(src.Comments, doc.Comments)

			walls, ok := doc.Layers.Item("Walls")
			require.True(ok)
			require.EqualValues(5, walls.Color.Index())

			dashed, ok := doc.Linetypes.Item("Dashed")
			require.True(ok)
			require.Equal("Dashed line", dashed.Description)
			require.Len(dashed.Segments, 2)

			notes, ok := doc.TextStyles.Item("Notes")
			require.True(ok)
			require.Equal("arial.ttf", notes.FontFile)

			entities := doc.Entities()
			require.Len(entities, 5)

			line := entities[0].(*drawing.Line)
			require.Equal(srcLine.Handle(), line.Handle())
			require.Same(walls, line.Layer())
			require.Same(dashed, line.Linetype())
			require.Contains(doc.Layers.References("Walls"), drawing.DxfObject(line))
			require.Equal(drawing.Vector3{X: 10, Y: 5}, line.End)

			circle := entities[1].(*drawing.Circle)
			require.Equal(1.5, circle.Radius)

			text := entities[2].(*drawing.Text)
			require.Equal("hello", text.Value)
			require.Same(notes, text.Style())

			poly := entities[3].(*drawing.LwPolyline)
			require.True(poly.IsClosed)
			require.Len(poly.Vertexes, 3)
			require.Equal(0.5, poly.Vertexes[1].Bulge)

			frame, ok := doc.Blocks.Item("Frame")
			require.True(ok)
			require.Equal(1, frame.Entities().Len())

			ins := entities[4].(*drawing.Insert)
			require.Same(frame, ins.Block())
			require.Equal(45.0, ins.Rotation)
			require.Len(ins.Attributes(), 1)
			require.Equal("NUMBER", ins.Attributes()[0].Tag)

			_, ok = doc.Layouts.Item("Sheet")
			require.True(ok)

			// new handles must not collide with the restored ones
			extra := drawing.NewPoint(drawing.Vector3{})
			doc.AddEntity(extra)
			_, clash := doc.AddedObject(extra.Handle())
			require.True(clash)
			require.Greater(doc.NumHandles(), src.NumHandles())
		})
	}
}

func Test_Load_Versions(t *testing.T) {
	stream := func(version string) string {
		return "  0\r\nSECTION\r\n  2\r\nHEADER\r\n" +
			"  9\r\n$ACADVER\r\n  1\r\n" + version + "\r\n" +
			"  0\r\nENDSEC\r\n  0\r\nEOF\r\n"
	}

	t.Run("must be ok to load the floor version", func(t *testing.T) {
		require := require.New(t)
		doc, err := Load(strings.NewReader(stream("AC1015")))
		require.NoError(err)
		require.NotNil(doc)
	})

	t.Run("must refuse an older database", func(t *testing.T) {
		require := require.New(t)
		_, err := Load(strings.NewReader(stream("AC1009")))
		require.ErrorIs(err, ErrUnsupportedVersionError)
		require.ErrorContains(err, "AC1009")
	})

	t.Run("must refuse a stream without a version", func(t *testing.T) {
		require := require.New(t)
		_, err := Load(strings.NewReader("  0\r\nSECTION\r\n  2\r\nHEADER\r\n  0\r\nENDSEC\r\n  0\r\nEOF\r\n"))
		require.ErrorIs(err, ErrFormatError)
	})
}

func Test_Load_Codepage(t *testing.T) {
	t.Run("must decode a legacy stream with the declared codepage", func(t *testing.T) {
		require := require.New(t)

		// «Grün» in windows-1252
		stream := "  0\r\nSECTION\r\n  2\r\nHEADER\r\n" +
			"  9\r\n$ACADVER\r\n  1\r\nAC1015\r\n" +
			"  9\r\n$DWGCODEPAGE\r\n  3\r\nANSI_1252\r\n" +
			"  0\r\nENDSEC\r\n" +
			"  0\r\nSECTION\r\n  2\r\nTABLES\r\n" +
			"  0\r\nTABLE\r\n  2\r\nLAYER\r\n" +
			"  0\r\nLAYER\r\n  2\r\nGr\xfcn\r\n 62\r\n3\r\n" +
			"  0\r\nENDTAB\r\n  0\r\nENDSEC\r\n" +
			"  0\r\nEOF\r\n"

		doc, err := Load(strings.NewReader(stream))
		require.NoError(err)

		l, ok := doc.Layers.Item("Grün")
		require.True(ok)
		require.EqualValues(3, l.Color.Index())
	})

	t.Run("must refuse an unknown codepage", func(t *testing.T) {
		require := require.New(t)

		stream := "  0\r\nSECTION\r\n  2\r\nHEADER\r\n" +
			"  9\r\n$ACADVER\r\n  1\r\nAC1015\r\n" +
			"  9\r\n$DWGCODEPAGE\r\n  3\r\nKOI7\r\n" +
			"  0\r\nENDSEC\r\n  0\r\nEOF\r\n"

		_, err := Load(strings.NewReader(stream))
		require.ErrorIs(err, tagio.ErrCodepageError)
	})
}

func Test_Load_HandleSeed(t *testing.T) {
	require := require.New(t)

	stream := "  0\r\nSECTION\r\n  2\r\nHEADER\r\n" +
		"  9\r\n$ACADVER\r\n  1\r\nAC1021\r\n" +
		"  9\r\n$HANDSEED\r\n  5\r\n2000\r\n" +
		"  0\r\nENDSEC\r\n  0\r\nEOF\r\n"

	doc, err := Load(strings.NewReader(stream))
	require.NoError(err)
	require.GreaterOrEqual(doc.NumHandles(), int64(0x2000))

	t.Run("must report a malformed seed", func(t *testing.T) {
		bad := strings.Replace(stream, "2000", "XYZ#", 1)
		_, err := Load(strings.NewReader(bad))
		require.ErrorIs(err, ErrFormatError)
	})
}

func Test_Load_Garbage(t *testing.T) {
	require := require.New(t)

	_, err := Load(strings.NewReader("  0\r\nLINE\r\n"))
	require.ErrorIs(err, ErrFormatError)

	_, err = Load(strings.NewReader("  0\r\nSECTION\r\n  0\r\nENDSEC\r\n  0\r\nEOF\r\n"))
	require.ErrorIs(err, ErrFormatError)
}

func Test_RoundTrip_DependentEntities(t *testing.T) {
	require := require.New(t)

	src := drawing.NewDocument()

	arrow := drawing.NewBlock("ClosedFilled")
	arrow.Entities().Add(drawing.NewSolid(drawing.Vector2{}, drawing.Vector2{X: 1},
		drawing.Vector2{X: 1, Y: 0.2}, drawing.Vector2{Y: 0.2}))
	src.Blocks.Add(arrow)

	iso := drawing.NewDimensionStyle("ISO-25")
	iso.SetDimArrow1(arrow)
	iso.SetLeaderArrow(arrow)
	src.DimensionStyles.Add(iso)

	dim := drawing.NewLinearDimension(drawing.Vector3{}, drawing.Vector3{X: 3, Y: 4}, 1.5, 90)
	dim.SetStyle(iso)
	src.AddEntity(dim)

	edge := drawing.NewLwPolyline(
		drawing.LwPolylineVertex{Position: drawing.Vector2{}},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 2}},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 2, Y: 2}},
	)
	edge.IsClosed = true
	hatch := drawing.NewHatch(drawing.HatchPatternSolid(), drawing.NewHatchBoundaryPath(edge))
	src.AddEntity(hatch)

	note := drawing.NewText("see detail", drawing.Vector3{X: 5, Y: 5}, 2)
	leader := drawing.NewLeader(drawing.Vector2{}, drawing.Vector2{X: 5, Y: 5})
	leader.SetStyle(iso)
	leader.SetAnnotation(note)
	src.AddEntity(leader)

	logo := src.ImageDefinitions.Add(drawing.NewImageDefinition("Logo", "logo.png", 64, 64))
	img := drawing.NewImage(logo, drawing.Vector3{X: 9}, 4, 4)
	img.Brightness = 70
	src.AddEntity(img)

	plan := src.UnderlayPdfDefinitions.Add(drawing.NewUnderlayDefinition("Plan", "plan.pdf", drawing.UnderlayPdf))
	src.AddEntity(drawing.NewUnderlay(plan, drawing.Vector3{Y: 9}))

	title := drawing.NewBlock("Title")
	title.AttributeDefinitions().Add("SHEET", drawing.NewAttributeDefinition("SHEET", 1))
	src.Blocks.Add(title)
	ins := drawing.NewInsert(title, drawing.Vector3{})
	a, ok := ins.Attribute("SHEET")
	require.True(ok)
	a.Value = "A-101"
	src.AddEntity(ins)

	src.Layouts.Add(drawing.NewLayout("Sheet"))
	require.True(src.SetActiveLayout("Sheet"))
	clip := drawing.NewLwPolyline(
		drawing.LwPolylineVertex{Position: drawing.Vector2{}},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 20}},
		drawing.LwPolylineVertex{Position: drawing.Vector2{X: 20, Y: 10}},
	)
	vp := drawing.NewViewport(drawing.Vector3{X: 10, Y: 5}, 20, 10)
	vp.SetClippingBoundary(clip)
	src.AddEntity(vp)
	require.True(src.SetActiveLayout("Model"))

	edgeHandle := edge.Handle()

	buf := bytes.Buffer{}
	require.NoError(Save(&buf, src, false))
	doc, err := Load(&buf)
	require.NoError(err)

	t.Run("must restore arrowhead block references", func(t *testing.T) {
		style, ok := doc.DimensionStyles.Item("ISO-25")
		require.True(ok)
		block, ok := doc.Blocks.Item("ClosedFilled")
		require.True(ok)
		require.Same(block, style.DimArrow1())
		require.Same(block, style.LeaderArrow())
	})

	t.Run("must rebuild the dimension", func(t *testing.T) {
		var d *drawing.Dimension
		for _, e := range doc.Entities() {
			if dd, ok := e.(*drawing.Dimension); ok {
				d = dd
			}
		}
		require.NotNil(d)
		require.Equal(drawing.DimensionLinear, d.Kind)
		require.Equal(1.5, d.Offset)
		require.Equal(90.0, d.Rotation)
		require.Equal("ISO-25", d.Style().Name())
		require.InDelta(4.0, d.Measurement(), 1e-9)
	})

	t.Run("must readopt hatch boundary entities", func(t *testing.T) {
		var h *drawing.Hatch
		for _, e := range doc.Entities() {
			if hh, ok := e.(*drawing.Hatch); ok {
				h = hh
			}
		}
		require.NotNil(h)
		require.Len(h.BoundaryPaths, 1)
		require.Len(h.BoundaryPaths[0].Entities, 1)
		be := h.BoundaryPaths[0].Entities[0].(*drawing.LwPolyline)
		require.Equal(edgeHandle, be.Handle())
		require.True(be.IsClosed)
		// the hatch holds the contour, removal must be refused
		model, _ := doc.Blocks.Item(drawing.ModelSpaceBlockName)
		require.False(model.Entities().Remove(be))
	})

	t.Run("must readopt the leader annotation", func(t *testing.T) {
		var l *drawing.Leader
		for _, e := range doc.Entities() {
			if ll, ok := e.(*drawing.Leader); ok {
				l = ll
			}
		}
		require.NotNil(l)
		note := l.Annotation().(*drawing.Text)
		require.Equal("see detail", note.Value)
	})

	t.Run("must rebuild image and underlay over their definitions", func(t *testing.T) {
		var (
			img *drawing.Image
			u   *drawing.Underlay
		)
		for _, e := range doc.Entities() {
			switch ee := e.(type) {
			case *drawing.Image:
				img = ee
			case *drawing.Underlay:
				u = ee
			}
		}
		require.NotNil(img)
		def, ok := doc.ImageDefinitions.Item("Logo")
		require.True(ok)
		require.Same(def, img.Definition())
		require.Equal(70, img.Brightness)

		require.NotNil(u)
		require.Equal("Plan", u.Definition().Name())
		require.Equal(drawing.UnderlayPdf, u.Definition().Type())
	})

	t.Run("must carry attribute values through", func(t *testing.T) {
		var ins *drawing.Insert
		for _, e := range doc.Entities() {
			if ii, ok := e.(*drawing.Insert); ok {
				ins = ii
			}
		}
		require.NotNil(ins)
		a, ok := ins.Attribute("SHEET")
		require.True(ok)
		require.Equal("A-101", a.Value)
	})

	t.Run("must rebuild the clipped viewport on its layout", func(t *testing.T) {
		sheet, ok := doc.Layouts.Item("Sheet")
		require.True(ok)
		var vp *drawing.Viewport
		sheet.AssociatedBlock().Entities().Enum(func(e drawing.Entity) {
			if vv, ok := e.(*drawing.Viewport); ok {
				vp = vv
			}
		})
		require.NotNil(vp)
		require.Equal(20.0, vp.Width)
		require.NotNil(vp.ClippingBoundary())
	})
}

func Test_Load_MalformedGeometry(t *testing.T) {
	require := require.New(t)

	stream := func(entity string) string {
		return "  0\r\nSECTION\r\n  2\r\nHEADER\r\n" +
			"  9\r\n$ACADVER\r\n  1\r\nAC1021\r\n" +
			"  0\r\nENDSEC\r\n" +
			"  0\r\nSECTION\r\n  2\r\nENTITIES\r\n" +
			entity +
			"  0\r\nENDSEC\r\n  0\r\nEOF\r\n"
	}

	t.Run("must refuse an ellipse with minor axis over major", func(t *testing.T) {
		_, err := Load(strings.NewReader(stream(
			"  0\r\nELLIPSE\r\n 40\r\n1.0\r\n 41\r\n2.0\r\n")))
		require.ErrorIs(err, ErrFormatError)
		require.ErrorContains(err, "ELLIPSE")
	})

	t.Run("must refuse a degenerate wipeout", func(t *testing.T) {
		_, err := Load(strings.NewReader(stream(
			"  0\r\nWIPEOUT\r\n 14\r\n0.0\r\n 24\r\n0.0\r\n")))
		require.ErrorIs(err, ErrFormatError)
		require.ErrorContains(err, "WIPEOUT")
	})
}

func Test_Save_Deterministic(t *testing.T) {
	require := require.New(t)

	doc := drawing.NewDocument()
	zebra := doc.ApplicationRegistries.Add(drawing.NewApplicationRegistry("ZEBRA"))
	acme := doc.ApplicationRegistries.Add(drawing.NewApplicationRegistry("ACME"))

	line := drawing.NewLine(drawing.Vector3{}, drawing.Vector3{X: 1})
	line.XData().Add(&drawing.XData{Registry: zebra,
		Records: []drawing.XDataRecord{{Code: 1000, Value: "z"}}})
	line.XData().Add(&drawing.XData{Registry: acme,
		Records: []drawing.XDataRecord{{Code: 1070, Value: int16(7)}}})
	doc.AddEntity(line)

	first := bytes.Buffer{}
	require.NoError(Save(&first, doc, false))
	for i := 0; i < 8; i++ {
		again := bytes.Buffer{}
		require.NoError(Save(&again, doc, false))
		require.Equal(first.Bytes(), again.Bytes())
	}
}
