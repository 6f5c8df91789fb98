/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package dxfio

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/dxf/pkg/drawing"
	"github.com/voedger/dxf/pkg/tagio"
)

// Save writes doc to w, text encoded unless binary is requested.
//
// Reference counts gate nothing here: every registered table entry is
// written, referenced or not. Entities below their geometric minimum
// (a one-vertex polyline, a hatch without contours) are skipped.
func Save(w io.Writer, doc *drawing.Document, binary bool) error {
	var tw tagio.Writer
	if binary {
		tw = tagio.NewBinaryWriter(w)
	} else {
		// AC1021 and later streams are UTF-8, no codepage transform
		tw = tagio.NewTextWriter(w, nil)
	}

	s := &saver{w: tw, doc: doc}

	for _, c := range doc.Comments {
		s.put(999, c)
	}
	s.header()
	s.tables()
	s.blocks()
	s.entities()
	s.objects()
	s.put(0, "EOF")

	if s.err != nil {
		return s.err
	}
	return tw.Flush()
}

// SaveFile writes doc to path, see Save.
func SaveFile(path string, doc *drawing.Document, binary bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, doc, binary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type saver struct {
	w   tagio.Writer
	doc *drawing.Document
	err error
}

func (s *saver) put(code int, value any) {
	if s.err == nil {
		s.err = s.w.Write(tagio.NewTag(code, value))
	}
}

func (s *saver) point(baseCode int, p drawing.Vector3) {
	s.put(baseCode, p.X)
	s.put(baseCode+10, p.Y)
	s.put(baseCode+20, p.Z)
}

func (s *saver) point2(baseCode int, p drawing.Vector2) {
	s.put(baseCode, p.X)
	s.put(baseCode+10, p.Y)
}

func (s *saver) section(name string, body func()) {
	s.put(0, "SECTION")
	s.put(2, name)
	body()
	s.put(0, "ENDSEC")
}

func (s *saver) header() {
	s.section(sectionHeader, func() {
		s.put(9, headerAcadVer)
		s.put(1, VersionSaved)
		s.put(9, headerCodepage)
		s.put(3, DefaultCodepage)
		s.put(9, headerHandSeed)
		s.put(5, strings.ToUpper(strconv.FormatInt(s.doc.NumHandles()+1, 16)))
	})
}

//—————————————————————————————
//— Tables ————————————————————
//—————————————————————————————

func (s *saver) tables() {
	s.section(sectionTables, func() {
		s.table("VPORT", func() {
			s.doc.VPorts.Enum(func(v *drawing.VPort) {
				s.tableEntry("VPORT", v)
				s.point2(12, v.ViewCenter)
				s.put(40, v.ViewHeight)
				s.put(41, v.AspectRatio)
				s.point2(13, v.SnapBasePoint)
				s.point2(14, v.SnapSpacing)
				s.point2(15, v.GridSpacing)
				s.put(75, boolInt16(v.SnapMode))
				s.put(76, boolInt16(v.ShowGrid))
			})
		})
		s.table("LTYPE", func() {
			s.doc.Linetypes.Enum(func(lt *drawing.Linetype) {
				s.tableEntry("LTYPE", lt)
				s.put(3, lt.Description)
				s.put(73, int16(len(lt.Segments)))
				s.put(40, lt.PatternLength())
				for _, seg := range lt.Segments {
					s.put(49, seg.Length)
				}
			})
		})
		s.table("LAYER", func() {
			s.doc.Layers.Enum(func(l *drawing.Layer) {
				s.tableEntry("LAYER", l)
				s.put(62, l.Color.Index())
				s.put(6, l.Linetype().Name())
				s.put(290, l.Plot)
				s.put(370, int16(l.Lineweight))
			})
		})
		s.table("STYLE", func() {
			s.doc.TextStyles.Enum(func(ts *drawing.TextStyle) {
				s.tableEntry("STYLE", ts)
				s.put(40, ts.Height)
				s.put(41, ts.WidthFactor)
				s.put(50, ts.ObliqueAngle)
				s.put(3, ts.FontFile)
			})
		})
		s.table("VIEW", func() {
			s.doc.Views.Enum(func(v *drawing.View) {
				s.tableEntry("VIEW", v)
				s.put(40, v.Height)
				s.put(41, v.Width)
				s.point(10, v.Target)
				s.point(11, v.Direction)
				s.put(42, v.Fov)
			})
		})
		s.table("UCS", func() {
			s.doc.UCSs.Enum(func(u *drawing.UCS) {
				s.tableEntry("UCS", u)
				s.point(10, u.Origin)
				s.point(11, u.XAxis)
				s.point(12, u.YAxis)
			})
		})
		s.table("APPID", func() {
			s.doc.ApplicationRegistries.Enum(func(r *drawing.ApplicationRegistry) {
				s.tableEntry("APPID", r)
			})
		})
		s.table("DIMSTYLE", func() {
			s.doc.DimensionStyles.Enum(func(d *drawing.DimensionStyle) {
				s.tableEntry("DIMSTYLE", d)
				s.put(40, d.Scale)
				s.put(41, d.ArrowSize)
				s.put(44, d.ExtLineExtend)
				s.put(42, d.ExtLineOffset)
				s.put(147, d.TextGap)
				s.put(140, d.TextHeight)
				s.put(271, int16(d.LengthPrecision))
				s.put(340, d.TextStyle().Handle())
				s.put(345, d.DimLineLinetype().Handle())
				s.put(346, d.ExtLine1Linetype().Handle())
				s.put(347, d.ExtLine2Linetype().Handle())
				if b := d.DimArrow1(); b != nil {
					s.put(343, b.Record().Handle())
				}
				if b := d.DimArrow2(); b != nil {
					s.put(344, b.Record().Handle())
				}
				if b := d.LeaderArrow(); b != nil {
					s.put(341, b.Record().Handle())
				}
			})
		})
		s.table("BLOCK_RECORD", func() {
			s.doc.Blocks.Enum(func(b *drawing.Block) {
				s.put(0, "BLOCK_RECORD")
				s.put(5, b.Record().Handle())
				s.put(2, b.Name())
				s.put(70, int16(b.Record().Units))
				s.put(280, boolInt16(b.Record().AllowExploding))
				s.put(281, boolInt16(b.Record().ScaleUniformly))
			})
		})
	})
}

func (s *saver) table(name string, body func()) {
	s.put(0, "TABLE")
	s.put(2, name)
	body()
	s.put(0, "ENDTAB")
}

func (s *saver) tableEntry(codeName string, o drawing.TableObject) {
	s.put(0, codeName)
	s.put(5, o.Handle())
	s.put(2, o.Name())
	s.xData(o.XData())
}

func (s *saver) xData(m drawing.XDataMap) {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		x := m[k]
		s.put(1001, x.Registry.Name())
		for _, r := range x.Records {
			s.put(r.Code, r.Value)
		}
	}
}

//—————————————————————————————
//— Blocks and entities ———————
//—————————————————————————————

func (s *saver) blocks() {
	s.section(sectionBlocks, func() {
		s.doc.Blocks.Enum(func(b *drawing.Block) {
			s.put(0, "BLOCK")
			s.put(5, b.Handle())
			s.put(8, b.Layer().Name())
			s.put(2, b.Name())
			s.put(4, b.Description)
			s.point(10, b.Origin)

			b.AttributeDefinitions().Enum(func(_ string, ad *drawing.AttributeDefinition) {
				s.entity(ad)
			})
			// model space entities go to the ENTITIES section
			if !s.modelSpace(b) {
				b.Entities().Enum(func(e drawing.Entity) { s.entity(e) })
			}

			s.put(0, "ENDBLK")
			s.put(8, b.Layer().Name())
		})
	})
}

func (s *saver) modelSpace(b *drawing.Block) bool {
	return strings.EqualFold(b.Name(), drawing.ModelSpaceBlockName)
}

func (s *saver) entities() {
	s.section(sectionEntities, func() {
		if model, ok := s.doc.Blocks.Item(drawing.ModelSpaceBlockName); ok {
			model.Entities().Enum(func(e drawing.Entity) { s.entity(e) })
		}
	})
}

// entity writes one entity record: the shared tags first, then the
// kind-specific geometry.
func (s *saver) entity(e drawing.Entity) {
	if !writable(e) {
		if logger.IsVerbose() {
			logger.Verbose("skip unwritable ", e.CodeName(), " «", e.Handle(), "»")
		}
		return
	}

	common := e.(styledEntity)

	s.put(0, e.CodeName())
	s.put(5, e.Handle())
	s.put(8, e.Layer().Name())
	s.put(6, e.Linetype().Name())
	if c := common.Color(); !c.IsByLayer() {
		s.put(62, c.Index())
	}
	if scale := common.LinetypeScale(); scale != 1.0 {
		s.put(48, scale)
	}
	if !common.IsVisible() {
		s.put(60, int16(1))
	}

	switch e := e.(type) {
	case *drawing.Line:
		s.point(10, e.Start)
		s.point(11, e.End)
	case *drawing.Point:
		s.point(10, e.Position)
	case *drawing.Circle:
		s.point(10, e.Center)
		s.put(40, e.Radius)
	case *drawing.Arc:
		s.point(10, e.Center)
		s.put(40, e.Radius)
		s.put(50, e.StartAngle)
		s.put(51, e.EndAngle)
	case *drawing.Ellipse:
		s.point(10, e.Center)
		s.put(40, e.MajorAxis)
		s.put(41, e.MinorAxis)
		s.put(50, e.StartAngle)
		s.put(51, e.EndAngle)
	case *drawing.Text:
		s.put(1, e.Value)
		s.point(10, e.Position)
		s.put(40, e.Height)
		s.put(50, e.Rotation)
		s.put(7, e.Style().Name())
	case *drawing.MText:
		s.put(1, e.Value)
		s.point(10, e.Position)
		s.put(40, e.Height)
		s.put(41, e.RectangleWidth)
		s.put(50, e.Rotation)
		s.put(7, e.Style().Name())
	case *drawing.AttributeDefinition:
		s.put(2, e.Tag)
		s.put(3, e.Prompt)
		s.put(1, e.Value)
		s.point(10, e.Position)
		s.put(40, e.Height)
		s.put(50, e.Rotation)
		s.put(7, e.Style().Name())
	case *drawing.LwPolyline:
		s.put(90, int32(len(e.Vertexes)))
		s.put(70, boolInt16(e.IsClosed))
		s.put(38, e.Elevation)
		for _, v := range e.Vertexes {
			s.point2(10, v.Position)
			s.put(42, v.Bulge)
		}
	case *drawing.Solid:
		s.point2(10, e.V1)
		s.point2(11, e.V2)
		s.point2(12, e.V3)
		s.point2(13, e.V4)
		s.put(38, e.Elevation)
	case *drawing.Face3D:
		s.point(10, e.V1)
		s.point(11, e.V2)
		s.point(12, e.V3)
		s.point(13, e.V4)
	case *drawing.Insert:
		s.put(2, e.Block().Name())
		s.point(10, e.Position)
		s.put(41, e.Scale.X)
		s.put(42, e.Scale.Y)
		s.put(43, e.Scale.Z)
		s.put(50, e.Rotation)
		if len(e.Attributes()) > 0 {
			s.put(66, int16(1))
		}
	case *drawing.MLine:
		s.put(2, e.Style().Name())
		s.put(40, e.Scale)
		s.put(70, boolInt16(e.IsClosed))
		s.put(72, int16(len(e.Vertexes)))
		for _, v := range e.Vertexes {
			s.point(11, v)
		}
	case *drawing.Wipeout:
		s.put(91, int32(len(e.Vertexes)))
		for _, v := range e.Vertexes {
			s.point2(14, v)
		}
	case *drawing.Hatch:
		s.put(2, e.Pattern.Name)
		s.put(52, e.Pattern.Angle)
		s.put(41, e.Pattern.Scale)
		s.put(91, int32(len(e.BoundaryPaths)))
		for _, p := range e.BoundaryPaths {
			s.put(92, int32(len(p.Entities)))
			for _, be := range p.Entities {
				s.put(330, be.Handle())
			}
		}
	case *drawing.Dimension:
		s.put(70, int16(e.Kind))
		s.point(13, e.P1)
		s.point(14, e.P2)
		s.put(40, e.Offset)
		s.put(50, e.Rotation)
		s.put(42, e.Measurement())
		s.put(3, e.Style().Name())
	case *drawing.Leader:
		s.put(3, e.Style().Name())
		s.put(71, boolInt16(e.HasArrow))
		s.put(76, int16(len(e.Vertexes)))
		for _, v := range e.Vertexes {
			s.point2(10, v)
		}
		if a := e.Annotation(); a != nil {
			s.put(340, a.Handle())
		}
	case *drawing.Image:
		s.point(10, e.Position)
		s.put(13, e.Width)
		s.put(23, e.Height)
		s.put(340, e.Definition().Name())
		s.put(281, int16(e.Brightness))
		s.put(282, int16(e.Contrast))
		s.put(283, int16(e.Fade))
	case *drawing.Underlay:
		s.point(10, e.Position)
		s.put(41, e.Scale.X)
		s.put(42, e.Scale.Y)
		s.put(43, e.Scale.Z)
		s.put(50, e.Rotation)
		s.put(340, e.Definition().Name())
	case *drawing.Viewport:
		s.point(10, e.Center)
		s.put(40, e.Width)
		s.put(41, e.Height)
		s.point2(12, e.ViewCenter)
		s.put(45, e.ViewHeight)
		if cb := e.ClippingBoundary(); cb != nil {
			s.put(340, cb.Handle())
		}
	}

	s.xData(e.XData())

	if ins, ok := e.(*drawing.Insert); ok {
		s.attribs(ins)
	}
}

// attribs writes the filled-in attributes of an insert as ATTRIB
// records closed by SEQEND, so values survive the round trip.
func (s *saver) attribs(ins *drawing.Insert) {
	attrs := ins.Attributes()
	if len(attrs) == 0 {
		return
	}
	for _, a := range attrs {
		s.put(0, "ATTRIB")
		s.put(5, a.Handle())
		s.put(8, a.Layer().Name())
		s.put(2, a.Tag)
		s.put(1, a.Value)
		s.point(10, a.Position)
		s.put(40, a.Height)
		s.put(50, a.Rotation)
		s.put(7, a.Style().Name())
	}
	s.put(0, "SEQEND")
}

// styledEntity is the slice of the entity surface the shared tags need.
// Entity keeps these off the interface, every concrete kind promotes
// them from its embedded base.
type styledEntity interface {
	drawing.Entity
	Color() drawing.AciColor
	LinetypeScale() float64
	IsVisible() bool
}

func writable(e drawing.Entity) bool {
	if w, ok := e.(interface{ IsWritable() bool }); ok {
		return w.IsWritable()
	}
	return true
}

//—————————————————————————————
//— Objects ———————————————————
//—————————————————————————————

func (s *saver) objects() {
	s.section(sectionObjects, func() {
		s.doc.Layouts.Enum(func(l *drawing.Layout) {
			s.put(0, "LAYOUT")
			s.put(5, l.Handle())
			s.put(1, l.Name())
			s.put(71, int16(l.TabOrder))
			s.point2(10, l.MinLimit)
			s.point2(11, l.MaxLimit)
		})
		s.doc.MLineStyles.Enum(func(m *drawing.MLineStyle) {
			s.put(0, "MLINESTYLE")
			s.put(5, m.Handle())
			s.put(2, m.Name())
			s.put(3, m.Description)
			s.put(51, m.StartAngle)
			s.put(52, m.EndAngle)
			s.put(71, int16(m.Elements().Len()))
			m.Elements().Enum(func(e *drawing.MLineStyleElement) {
				s.put(49, e.Offset)
				s.put(62, e.Color.Index())
				s.put(6, e.Linetype().Name())
			})
		})
		s.doc.ImageDefinitions.Enum(func(d *drawing.ImageDefinition) {
			s.put(0, "IMAGEDEF")
			s.put(5, d.Handle())
			s.put(2, d.Name())
			s.put(1, d.File)
			s.put(10, float64(d.Width))
			s.put(20, float64(d.Height))
			s.put(141, d.PixelSize)
		})
		for _, t := range []struct {
			codeName string
			table    *drawing.Table[*drawing.UnderlayDefinition]
		}{
			{"DGNDEFINITION", s.doc.UnderlayDgnDefinitions},
			{"DWFDEFINITION", s.doc.UnderlayDwfDefinitions},
			{"PDFDEFINITION", s.doc.UnderlayPdfDefinitions},
		} {
			t.table.Enum(func(d *drawing.UnderlayDefinition) {
				s.put(0, t.codeName)
				s.put(5, d.Handle())
				s.put(2, d.Name())
				s.put(1, d.File)
				s.put(3, d.Page)
			})
		}
	})
}

func boolInt16(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
