/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package dxfio

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding"

	"github.com/voedger/dxf/pkg/drawing"
	"github.com/voedger/dxf/pkg/tagio"
)

// Load reads a drawing from r, text or binary encoded.
//
// Text streams older than AC1021 are decoded with the codepage the
// header declares; AC1021 and later streams are UTF-8. Databases older
// than AC1015 (AutoCAD 2000) are refused with ErrUnsupportedVersionError.
//
// Handles persisted in the stream survive the load, the handle counter
// is raised to the stream seed. The reserved defaults keep the handles
// the fresh document assigned them.
func Load(r io.Reader) (*drawing.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	binary := tagio.IsBinary(data)

	tags, err := readTags(data, nil)
	if err != nil {
		return nil, err
	}

	version, codepage := prescanHeader(tags)
	switch {
	case version == "":
		return nil, ErrFormat("missing %s header variable", headerAcadVer)
	case version < VersionFloor:
		return nil, ErrUnsupportedVersion("«%s» is older than «%s»", version, VersionFloor)
	}
	if !binary && (version < VersionSaved) && (codepage != "") {
		// legacy text stream, re-read through the declared codepage
		enc, err := tagio.Codepage(codepage)
		if err != nil {
			return nil, err
		}
		if tags, err = readTags(data, enc); err != nil {
			return nil, err
		}
	}

	ld := &loader{doc: drawing.NewDocument(), byHandle: map[string]drawing.Entity{}}
	if err := ld.run(tags); err != nil {
		return nil, err
	}
	return ld.doc, nil
}

// Open reads a drawing from path, see Load.
func Open(path string) (*drawing.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func readTags(data []byte, enc encoding.Encoding) ([]tagio.Tag, error) {
	r, err := tagio.NewReader(bytes.NewReader(data), enc)
	if err != nil {
		return nil, err
	}
	tags := make([]tagio.Tag, 0, len(data)/16)
	for r.Next() {
		tags = append(tags, r.Tag())
	}
	if err := r.Err(); err != nil {
		return nil, ErrFormat("%v", err)
	}
	return tags, nil
}

// prescanHeader pulls the version and codepage out of the HEADER
// section before the proper parse, both values are plain ASCII in any
// encoding.
func prescanHeader(tags []tagio.Tag) (version, codepage string) {
	name := ""
	for _, t := range tags {
		switch t.Code {
		case 0:
			if t.AsString() == "ENDSEC" && name != "" {
				return version, codepage
			}
		case 9:
			name = t.AsString()
		case 1:
			if name == headerAcadVer {
				version = t.AsString()
			}
		case 3:
			if name == headerCodepage {
				codepage = t.AsString()
			}
		}
	}
	return version, codepage
}

//—————————————————————————————
//— Records ———————————————————
//—————————————————————————————

// record is one code-0 delimited group of tags: a table entry, an
// entity, an object.
type record struct {
	name string
	tags []tagio.Tag
}

// splitRecords groups tags on code-0 boundaries. Tags before the first
// code 0 are dropped.
func splitRecords(tags []tagio.Tag) []record {
	var out []record
	for _, t := range tags {
		if t.Code == 0 {
			out = append(out, record{name: t.AsString()})
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			last.tags = append(last.tags, t)
		}
	}
	return out
}

func (r record) str(code int, def string) string {
	for _, t := range r.tags {
		if t.Code == code {
			return t.AsString()
		}
	}
	return def
}

func (r record) f64(code int, def float64) float64 {
	for _, t := range r.tags {
		if t.Code == code {
			return t.AsFloat()
		}
	}
	return def
}

func (r record) i16(code int, def int16) int16 {
	for _, t := range r.tags {
		if t.Code == code {
			return int16(t.AsInt())
		}
	}
	return def
}

func (r record) flag(code int, def bool) bool {
	for _, t := range r.tags {
		if t.Code == code {
			return t.AsBool()
		}
	}
	return def
}

// pos reads a value that must be positive, falling back to def:
// constructors panic on non-positive radii and heights, a damaged
// stream must not take the loader down with them.
func (r record) pos(code int, def float64) float64 {
	if v := r.f64(code, def); v > 0 {
		return v
	}
	return def
}

func (r record) point(base int, def drawing.Vector3) drawing.Vector3 {
	return drawing.Vector3{
		X: r.f64(base, def.X),
		Y: r.f64(base+10, def.Y),
		Z: r.f64(base+20, def.Z),
	}
}

func (r record) point2(base int, def drawing.Vector2) drawing.Vector2 {
	return drawing.Vector2{
		X: r.f64(base, def.X),
		Y: r.f64(base+10, def.Y),
	}
}

//—————————————————————————————
//— Loader ————————————————————
//—————————————————————————————

type loader struct {
	doc *drawing.Document

	// BLOCK_RECORD rows by name, applied while blocks register
	records map[string]record

	// arrowheads reference block records by handle, resolved after the
	// BLOCKS section
	arrowFixups []arrowFixup

	// every attached entity by handle, for dependents to adopt
	byHandle map[string]drawing.Entity

	// dependent entity records (hatches, leaders, viewports, images,
	// underlays) held back until their references can resolve
	deferred []deferredEntity
}

type arrowFixup struct {
	style  *drawing.DimensionStyle
	code   int
	handle string
}

type deferredEntity struct {
	r     record
	block *drawing.Block
}

// dependentKind reports whether a record references other entities or
// objects loaded later, forcing a second pass.
func dependentKind(name string) bool {
	switch name {
	case "HATCH", "LEADER", "VIEWPORT", "IMAGE",
		"DGNUNDERLAY", "DWFUNDERLAY", "PDFUNDERLAY":
		return true
	}
	return false
}

func (ld *loader) run(tags []tagio.Tag) error {
	// preamble comments
	for len(tags) > 0 && tags[0].Code == 999 {
		ld.doc.Comments = append(ld.doc.Comments, tags[0].AsString())
		tags = tags[1:]
	}

	for len(tags) > 0 {
		t := tags[0]
		tags = tags[1:]
		if t.Code != 0 {
			continue
		}
		switch t.AsString() {
		case "EOF":
			return ld.resolveDeferred()
		case "SECTION":
			var body []tagio.Tag
			body, tags = splitSection(tags)
			if err := ld.section(body); err != nil {
				return err
			}
		default:
			return ErrFormat("unexpected top level record «%s»", t.AsString())
		}
	}
	return ErrFormat("missing EOF record")
}

// splitSection cuts tags at the matching ENDSEC, which is consumed but
// not returned.
func splitSection(tags []tagio.Tag) (body, rest []tagio.Tag) {
	for i, t := range tags {
		if t.Code == 0 && t.AsString() == "ENDSEC" {
			return tags[:i], tags[i+1:]
		}
	}
	return tags, nil
}

func (ld *loader) section(body []tagio.Tag) error {
	if len(body) == 0 || body[0].Code != 2 {
		return ErrFormat("unnamed section")
	}
	name := body[0].AsString()
	body = body[1:]

	switch name {
	case sectionHeader:
		return ld.header(body)
	case sectionTables:
		return ld.tables(body)
	case sectionBlocks:
		return ld.blocks(body)
	case sectionEntities:
		return ld.entities(body)
	case sectionObjects:
		return ld.objects(body)
	default:
		// CLASSES, THUMBNAILIMAGE and vendor sections carry nothing the
		// document graph keeps
		if logger.IsVerbose() {
			logger.Verbose("skip section «", name, "»")
		}
		return nil
	}
}

func (ld *loader) header(body []tagio.Tag) error {
	name := ""
	for _, t := range body {
		if t.Code == 9 {
			name = t.AsString()
			continue
		}
		if name == headerHandSeed && t.Code == 5 {
			seed, err := strconv.ParseInt(t.AsString(), 16, 64)
			if err != nil {
				return ErrFormat("malformed %s value «%s»", headerHandSeed, t.AsString())
			}
			ld.doc.RaiseHandleSeed(seed)
		}
	}
	return nil
}

//—————————————————————————————
//— Tables ————————————————————
//—————————————————————————————

func (ld *loader) tables(body []tagio.Tag) error {
	byTable := map[string][]record{}
	table := ""
	for _, r := range splitRecords(body) {
		switch r.name {
		case "TABLE":
			table = r.str(2, "")
		case "ENDTAB":
			table = ""
		default:
			if r.name == table {
				byTable[table] = append(byTable[table], r)
			}
		}
	}

	// resource tables load in dependency order: linetypes before the
	// layers that wear them, text styles and linetypes before the
	// dimension styles that reference them by handle
	ld.loadLinetypes(byTable["LTYPE"])
	ld.loadLayers(byTable["LAYER"])
	ld.loadTextStyles(byTable["STYLE"])
	ld.loadAppRegistries(byTable["APPID"])
	ld.loadDimStyles(byTable["DIMSTYLE"])
	ld.loadVPorts(byTable["VPORT"])
	ld.loadViews(byTable["VIEW"])
	ld.loadUCSs(byTable["UCS"])

	ld.records = map[string]record{}
	for _, r := range byTable["BLOCK_RECORD"] {
		ld.records[r.str(2, "")] = r
	}
	return nil
}

// tableRow mirrors the constraint drawing.Table places on its items.
type tableRow interface {
	drawing.TableObject
	comparable
}

// restore registers a still detached table object keeping its stream
// handle.
func restore[T tableRow](t *drawing.Table[T], item T, r record) T {
	if h := r.str(5, ""); h != "" {
		drawing.RestoreHandle(item, h)
	}
	return t.Add(item)
}

func (ld *loader) loadLinetypes(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		lt, ok := ld.doc.Linetypes.Item(name)
		if !ok {
			lt = drawing.NewLinetype(name)
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(lt, h)
			}
		}
		lt.Description = r.str(3, lt.Description)
		lt.Segments = nil
		for _, t := range r.tags {
			if t.Code == 49 {
				lt.Segments = append(lt.Segments, drawing.LinetypeSegment{Length: t.AsFloat()})
			}
		}
		ld.loadXData(lt, r)
		if !ok {
			ld.doc.Linetypes.Add(lt)
		}
	}
}

func (ld *loader) loadLayers(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		l, ok := ld.doc.Layers.Item(name)
		if !ok {
			l = drawing.NewLayer(name)
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(l, h)
			}
		}
		if i := r.i16(62, 0); (i >= 1) && (i <= 255) {
			l.Color = drawing.ColorFromIndex(i)
		}
		l.Plot = r.flag(290, l.Plot)
		l.Lineweight = drawing.Lineweight(r.i16(370, int16(l.Lineweight)))
		l.SetLinetype(ld.linetypeRef(r.str(6, drawing.ContinuousLinetypeName)))
		ld.loadXData(l, r)
		if !ok {
			ld.doc.Layers.Add(l)
		}
	}
}

func (ld *loader) loadTextStyles(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		ts, ok := ld.doc.TextStyles.Item(name)
		if !ok {
			ts = drawing.NewTextStyle(name, r.str(3, "simplex.shx"))
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(ts, h)
			}
		}
		ts.FontFile = r.str(3, ts.FontFile)
		ts.Height = r.f64(40, ts.Height)
		ts.WidthFactor = r.f64(41, ts.WidthFactor)
		ts.ObliqueAngle = r.f64(50, ts.ObliqueAngle)
		ld.loadXData(ts, r)
		if !ok {
			ld.doc.TextStyles.Add(ts)
		}
	}
}

func (ld *loader) loadAppRegistries(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		if _, ok := ld.doc.ApplicationRegistries.Item(name); !ok {
			restore(ld.doc.ApplicationRegistries, drawing.NewApplicationRegistry(name), r)
		}
	}
}

func (ld *loader) loadDimStyles(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		d, ok := ld.doc.DimensionStyles.Item(name)
		if !ok {
			d = drawing.NewDimensionStyle(name)
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(d, h)
			}
		}
		d.Scale = r.f64(40, d.Scale)
		d.ArrowSize = r.f64(41, d.ArrowSize)
		d.ExtLineExtend = r.f64(44, d.ExtLineExtend)
		d.ExtLineOffset = r.f64(42, d.ExtLineOffset)
		d.TextGap = r.f64(147, d.TextGap)
		d.TextHeight = r.f64(140, d.TextHeight)
		d.LengthPrecision = int(r.i16(271, int16(d.LengthPrecision)))

		if ts, ok := ld.addedTextStyle(r.str(340, "")); ok {
			d.SetTextStyle(ts)
		}
		if lt, ok := ld.addedLinetype(r.str(345, "")); ok {
			d.SetDimLineLinetype(lt)
		}
		if lt, ok := ld.addedLinetype(r.str(346, "")); ok {
			d.SetExtLine1Linetype(lt)
		}
		if lt, ok := ld.addedLinetype(r.str(347, "")); ok {
			d.SetExtLine2Linetype(lt)
		}
		for _, code := range []int{341, 343, 344} {
			if h := r.str(code, ""); h != "" {
				ld.arrowFixups = append(ld.arrowFixups, arrowFixup{style: d, code: code, handle: h})
			}
		}
		ld.loadXData(d, r)
		if !ok {
			ld.doc.DimensionStyles.Add(d)
		}
	}
}

func (ld *loader) addedTextStyle(handle string) (*drawing.TextStyle, bool) {
	if o, ok := ld.doc.AddedObject(handle); ok {
		if ts, ok := o.(*drawing.TextStyle); ok {
			return ts, true
		}
	}
	return nil, false
}

func (ld *loader) addedLinetype(handle string) (*drawing.Linetype, bool) {
	if o, ok := ld.doc.AddedObject(handle); ok {
		if lt, ok := o.(*drawing.Linetype); ok {
			return lt, true
		}
	}
	return nil, false
}

// resolveArrows runs after the BLOCKS section: arrowhead references in
// DIMSTYLE rows point at block records, which exist only once their
// blocks register.
func (ld *loader) resolveArrows() {
	byHandle := map[string]string{}
	for name, rec := range ld.records {
		if h := rec.str(5, ""); h != "" {
			byHandle[h] = name
		}
	}
	for _, f := range ld.arrowFixups {
		var block *drawing.Block
		if name, ok := byHandle[f.handle]; ok {
			block, _ = ld.doc.Blocks.Item(name)
		}
		if block == nil {
			if logger.IsVerbose() {
				logger.Verbose("dangling arrowhead reference «", f.handle, "»")
			}
			continue
		}
		switch f.code {
		case 341:
			f.style.SetLeaderArrow(block)
		case 343:
			f.style.SetDimArrow1(block)
		case 344:
			f.style.SetDimArrow2(block)
		}
	}
}

func (ld *loader) loadVPorts(rows []record) {
	for _, r := range rows {
		name := r.str(2, "")
		v, ok := ld.doc.VPorts.Item(name)
		if !ok {
			v = drawing.NewVPort(name)
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(v, h)
			}
		}
		v.ViewCenter = r.point2(12, v.ViewCenter)
		v.ViewHeight = r.f64(40, v.ViewHeight)
		v.AspectRatio = r.f64(41, v.AspectRatio)
		v.SnapBasePoint = r.point2(13, v.SnapBasePoint)
		v.SnapSpacing = r.point2(14, v.SnapSpacing)
		v.GridSpacing = r.point2(15, v.GridSpacing)
		v.SnapMode = r.i16(75, 0) != 0
		v.ShowGrid = r.i16(76, 0) != 0
		ld.loadXData(v, r)
		if !ok {
			ld.doc.VPorts.Add(v)
		}
	}
}

func (ld *loader) loadViews(rows []record) {
	for _, r := range rows {
		v := drawing.NewView(r.str(2, ""))
		v.Height = r.f64(40, v.Height)
		v.Width = r.f64(41, v.Width)
		v.Target = r.point(10, v.Target)
		v.Direction = r.point(11, v.Direction)
		v.Fov = r.f64(42, v.Fov)
		ld.loadXData(v, r)
		restore(ld.doc.Views, v, r)
	}
}

func (ld *loader) loadUCSs(rows []record) {
	for _, r := range rows {
		u := drawing.NewUCS(r.str(2, ""))
		u.Origin = r.point(10, u.Origin)
		u.XAxis = r.point(11, u.XAxis)
		u.YAxis = r.point(12, u.YAxis)
		ld.loadXData(u, r)
		restore(ld.doc.UCSs, u, r)
	}
}

//—————————————————————————————
//— Blocks and entities ———————
//—————————————————————————————

func (ld *loader) blocks(body []tagio.Tag) error {
	var (
		blockRec record
		content  []record
		inBlock  bool
	)
	flush := func() error {
		if !inBlock {
			return nil
		}
		inBlock = false
		err := ld.loadBlock(blockRec, content)
		content = nil
		return err
	}

	for _, r := range splitRecords(body) {
		switch r.name {
		case "BLOCK":
			if err := flush(); err != nil {
				return err
			}
			blockRec, inBlock = r, true
		case "ENDBLK":
			if err := flush(); err != nil {
				return err
			}
		default:
			if inBlock {
				content = append(content, r)
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	ld.resolveArrows()
	return nil
}

func (ld *loader) loadBlock(r record, content []record) error {
	name := r.str(2, "")
	if name == "" {
		return ErrFormat("unnamed block")
	}

	b, registered := ld.doc.Blocks.Item(name)
	if !registered {
		b = drawing.NewBlock(name)
		if h := r.str(5, ""); h != "" {
			drawing.RestoreHandle(b, h)
		}
		if rec, ok := ld.records[name]; ok {
			if h := rec.str(5, ""); h != "" {
				drawing.RestoreHandle(b.Record(), h)
			}
			b.Record().Units = drawing.DrawingUnits(rec.i16(70, 0))
			b.Record().AllowExploding = rec.i16(280, 1) != 0
			b.Record().ScaleUniformly = rec.i16(281, 0) != 0
		}
		b.SetLayer(ld.layerRef(r.str(8, drawing.DefaultLayerName)))
	}
	b.Description = r.str(4, b.Description)
	b.Origin = r.point(10, b.Origin)

	// model space content lives in the ENTITIES section, its block
	// body stays empty
	model := name == drawing.ModelSpaceBlockName

	var (
		members    []drawing.Entity
		lastInsert *drawing.Insert
	)
	for _, er := range content {
		if model {
			continue
		}
		switch {
		case er.name == "ATTRIB" && lastInsert != nil:
			ld.applyAttrib(lastInsert, er)
			continue
		case er.name == "SEQEND":
			lastInsert = nil
			continue
		case dependentKind(er.name):
			ld.deferred = append(ld.deferred, deferredEntity{r: er, block: b})
			continue
		}
		e, err := ld.parseEntity(er)
		if err != nil {
			return err
		}
		if e == nil {
			continue
		}
		if ad, ok := e.(*drawing.AttributeDefinition); ok {
			b.AttributeDefinitions().Add(ad.Tag, ad)
			continue
		}
		b.Entities().Add(e)
		members = append(members, e)
		lastInsert, _ = e.(*drawing.Insert)
	}

	if !registered {
		ld.doc.Blocks.Add(b)
	}
	// members attach when the block registers, index them afterwards
	for _, e := range members {
		ld.byHandle[e.Handle()] = e
	}
	return nil
}

func (ld *loader) entities(body []tagio.Tag) error {
	model, ok := ld.doc.Blocks.Item(drawing.ModelSpaceBlockName)
	if !ok {
		return ErrFormat("missing model space block")
	}
	var lastInsert *drawing.Insert
	for _, r := range splitRecords(body) {
		switch {
		case r.name == "ATTRIB" && lastInsert != nil:
			ld.applyAttrib(lastInsert, r)
			continue
		case r.name == "SEQEND":
			lastInsert = nil
			continue
		case dependentKind(r.name):
			ld.deferred = append(ld.deferred, deferredEntity{r: r, block: model})
			continue
		}
		e, err := ld.parseEntity(r)
		if err != nil {
			return err
		}
		if e == nil {
			continue
		}
		model.Entities().Add(e)
		ld.byHandle[e.Handle()] = e
		lastInsert, _ = e.(*drawing.Insert)
	}
	return nil
}

// parseEntity builds a detached entity from one record. Kinds the
// loader does not rebuild come back nil without error.
func (ld *loader) parseEntity(r record) (drawing.Entity, error) {
	var e drawing.Entity

	switch r.name {
	case "LINE":
		e = drawing.NewLine(r.point(10, drawing.Vector3{}), r.point(11, drawing.Vector3{}))
	case "POINT":
		e = drawing.NewPoint(r.point(10, drawing.Vector3{}))
	case "CIRCLE":
		e = drawing.NewCircle(r.point(10, drawing.Vector3{}), r.pos(40, 1))
	case "ARC":
		e = drawing.NewArc(r.point(10, drawing.Vector3{}), r.pos(40, 1), r.f64(50, 0), r.f64(51, 360))
	case "ELLIPSE":
		major, minor := r.pos(40, 1), r.pos(41, 1)
		if minor > major {
			return nil, ErrFormat("ELLIPSE minor axis %f exceeds major axis %f", minor, major)
		}
		el := drawing.NewEllipse(r.point(10, drawing.Vector3{}), major, minor)
		el.StartAngle = r.f64(50, el.StartAngle)
		el.EndAngle = r.f64(51, el.EndAngle)
		e = el
	case "TEXT":
		t := drawing.NewText(r.str(1, ""), r.point(10, drawing.Vector3{}), r.pos(40, 1))
		t.Rotation = r.f64(50, 0)
		t.SetStyle(ld.textStyleRef(r.str(7, drawing.DefaultTextStyleName)))
		e = t
	case "MTEXT":
		t := drawing.NewMText(r.str(1, ""), r.point(10, drawing.Vector3{}), r.pos(40, 1))
		t.RectangleWidth = r.f64(41, t.RectangleWidth)
		t.Rotation = r.f64(50, 0)
		t.SetStyle(ld.textStyleRef(r.str(7, drawing.DefaultTextStyleName)))
		e = t
	case "ATTDEF":
		tag := r.str(2, "")
		if tag == "" {
			return nil, ErrFormat("ATTDEF without a tag")
		}
		ad := drawing.NewAttributeDefinition(tag, r.pos(40, 1))
		ad.Prompt = r.str(3, "")
		ad.Value = r.str(1, "")
		ad.Position = r.point(10, drawing.Vector3{})
		ad.Rotation = r.f64(50, 0)
		ad.SetStyle(ld.textStyleRef(r.str(7, drawing.DefaultTextStyleName)))
		e = ad
	case "LWPOLYLINE":
		p := drawing.NewLwPolyline(lwVertexes(r.tags)...)
		p.IsClosed = r.i16(70, 0) != 0
		p.Elevation = r.f64(38, 0)
		e = p
	case "SOLID":
		s := drawing.NewSolid(r.point2(10, drawing.Vector2{}), r.point2(11, drawing.Vector2{}),
			r.point2(12, drawing.Vector2{}), r.point2(13, drawing.Vector2{}))
		s.Elevation = r.f64(38, 0)
		e = s
	case "3DFACE":
		e = drawing.NewFace3D(r.point(10, drawing.Vector3{}), r.point(11, drawing.Vector3{}),
			r.point(12, drawing.Vector3{}), r.point(13, drawing.Vector3{}))
	case "INSERT":
		name := r.str(2, "")
		block, ok := ld.doc.Blocks.Item(name)
		if !ok {
			return nil, ErrFormat("INSERT references unknown block «%s»", name)
		}
		ins := drawing.NewInsert(block, r.point(10, drawing.Vector3{}))
		ins.Scale = drawing.Vector3{X: r.f64(41, 1), Y: r.f64(42, 1), Z: r.f64(43, 1)}
		ins.Rotation = r.f64(50, 0)
		e = ins
	case "MLINE":
		m := drawing.NewMLine(mlineVertexes(r.tags)...)
		m.Scale = r.f64(40, m.Scale)
		m.IsClosed = r.i16(70, 0) != 0
		if style, ok := ld.doc.MLineStyles.Item(r.str(2, "")); ok {
			m.SetStyle(style)
		}
		e = m
	case "WIPEOUT":
		vertexes := pointList(r.tags, 14)
		if len(vertexes) < 3 {
			return nil, ErrFormat("WIPEOUT needs at least three vertexes, got %d", len(vertexes))
		}
		e = drawing.NewWipeout(vertexes...)
	case "DIMENSION":
		p1 := r.point(13, drawing.Vector3{})
		p2 := r.point(14, drawing.Vector3{})
		var d *drawing.Dimension
		if drawing.DimensionKind(r.i16(70, 0)) == drawing.DimensionLinear {
			d = drawing.NewLinearDimension(p1, p2, r.f64(40, 0), r.f64(50, 0))
		} else {
			d = drawing.NewAlignedDimension(p1, p2, r.f64(40, 0))
		}
		d.SetStyle(ld.dimStyleRef(r.str(3, drawing.DefaultDimStyleName)))
		e = d
	default:
		if logger.IsVerbose() {
			logger.Verbose("skip entity «", r.name, "»")
		}
		return nil, nil
	}

	ld.entityCommon(e, r)
	return e, nil
}

// mutableEntity is the setter surface shared by every concrete kind
// but kept off the sealed Entity interface.
type mutableEntity interface {
	drawing.Entity
	SetColor(drawing.AciColor)
	SetLinetypeScale(float64)
	SetVisible(bool)
}

func (ld *loader) entityCommon(e drawing.Entity, r record) {
	if h := r.str(5, ""); h != "" {
		drawing.RestoreHandle(e, h)
	}
	e.SetLayer(ld.layerRef(r.str(8, drawing.DefaultLayerName)))
	e.SetLinetype(ld.linetypeRef(r.str(6, drawing.ByLayerLinetypeName)))

	m := e.(mutableEntity)
	switch i := r.i16(62, -1); {
	case i == 0:
		m.SetColor(drawing.ColorByBlock())
	case (i >= 1) && (i <= 255):
		m.SetColor(drawing.ColorFromIndex(i))
	}
	if scale := r.f64(48, 1); scale > 0 && scale != 1 {
		m.SetLinetypeScale(scale)
	}
	if r.i16(60, 0) != 0 {
		m.SetVisible(false)
	}
	ld.loadXData(e, r)
}

func lwVertexes(tags []tagio.Tag) []drawing.LwPolylineVertex {
	var out []drawing.LwPolylineVertex
	for _, t := range tags {
		switch t.Code {
		case 10:
			out = append(out, drawing.LwPolylineVertex{Position: drawing.Vector2{X: t.AsFloat()}})
		case 20:
			if len(out) > 0 {
				out[len(out)-1].Position.Y = t.AsFloat()
			}
		case 42:
			if len(out) > 0 {
				out[len(out)-1].Bulge = t.AsFloat()
			}
		}
	}
	return out
}

func mlineVertexes(tags []tagio.Tag) []drawing.Vector3 {
	var out []drawing.Vector3
	for _, t := range tags {
		switch t.Code {
		case 11:
			out = append(out, drawing.Vector3{X: t.AsFloat()})
		case 21:
			if len(out) > 0 {
				out[len(out)-1].Y = t.AsFloat()
			}
		case 31:
			if len(out) > 0 {
				out[len(out)-1].Z = t.AsFloat()
			}
		}
	}
	return out
}

func pointList(tags []tagio.Tag, base int) []drawing.Vector2 {
	var out []drawing.Vector2
	for _, t := range tags {
		switch t.Code {
		case base:
			out = append(out, drawing.Vector2{X: t.AsFloat()})
		case base + 10:
			if len(out) > 0 {
				out[len(out)-1].Y = t.AsFloat()
			}
		}
	}
	return out
}

// applyAttrib copies a persisted ATTRIB record onto the attribute the
// insert regenerated from its definition, matched by tag.
func (ld *loader) applyAttrib(ins *drawing.Insert, r record) {
	a, ok := ins.Attribute(r.str(2, ""))
	if !ok {
		if logger.IsVerbose() {
			logger.Verbose("ATTRIB «", r.str(2, ""), "» has no definition in block «", ins.Block().Name(), "»")
		}
		return
	}
	a.Value = r.str(1, a.Value)
	a.Position = r.point(10, a.Position)
	a.Height = r.pos(40, a.Height)
	a.Rotation = r.f64(50, a.Rotation)
}

//—————————————————————————————
//— Dependent entities ————————
//—————————————————————————————

// resolveDeferred runs once the whole stream is read: hatches, leaders
// and viewports reference sibling entities by handle, images and
// underlays reference definitions from the later OBJECTS section.
func (ld *loader) resolveDeferred() error {
	for _, d := range ld.deferred {
		e, err := ld.parseDeferred(d.r, d.block)
		if err != nil {
			return err
		}
		if e == nil {
			continue
		}
		d.block.Entities().Add(e)
		ld.byHandle[e.Handle()] = e
	}
	return nil
}

func (ld *loader) parseDeferred(r record, block *drawing.Block) (drawing.Entity, error) {
	var e drawing.Entity

	switch r.name {
	case "HATCH":
		paths, err := ld.hatchPaths(r, block)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			if logger.IsVerbose() {
				logger.Verbose("skip HATCH «", r.str(5, ""), "» without contours")
			}
			return nil, nil
		}
		h := drawing.NewHatch(drawing.HatchPattern{
			Name:  r.str(2, "SOLID"),
			Angle: r.f64(52, 0),
			Scale: r.f64(41, 1),
		}, paths...)
		e = h

	case "LEADER":
		vertexes := pointList(r.tags, 10)
		if len(vertexes) < 2 {
			return nil, ErrFormat("LEADER needs at least two vertexes, got %d", len(vertexes))
		}
		l := drawing.NewLeader(vertexes...)
		l.HasArrow = r.i16(71, 1) != 0
		l.SetStyle(ld.dimStyleRef(r.str(3, drawing.DefaultDimStyleName)))
		if h := r.str(340, ""); h != "" {
			a, err := ld.adoptEntity(block, h)
			if err != nil {
				return nil, err
			}
			l.SetAnnotation(a)
		}
		e = l

	case "VIEWPORT":
		vp := drawing.NewViewport(r.point(10, drawing.Vector3{}), r.pos(40, 1), r.pos(41, 1))
		vp.ViewCenter = r.point2(12, vp.ViewCenter)
		vp.ViewHeight = r.f64(45, vp.ViewHeight)
		if h := r.str(340, ""); h != "" {
			cb, err := ld.adoptEntity(block, h)
			if err != nil {
				return nil, err
			}
			vp.SetClippingBoundary(cb)
		}
		e = vp

	case "IMAGE":
		name := r.str(340, "")
		def, ok := ld.doc.ImageDefinitions.Item(name)
		if !ok {
			return nil, ErrFormat("IMAGE references unknown definition «%s»", name)
		}
		img := drawing.NewImage(def, r.point(10, drawing.Vector3{}), r.pos(13, 1), r.pos(23, 1))
		img.Brightness = int(r.i16(281, int16(img.Brightness)))
		img.Contrast = int(r.i16(282, int16(img.Contrast)))
		img.Fade = int(r.i16(283, int16(img.Fade)))
		e = img

	case "DGNUNDERLAY", "DWFUNDERLAY", "PDFUNDERLAY":
		table := ld.doc.UnderlayDgnDefinitions
		switch r.name {
		case "DWFUNDERLAY":
			table = ld.doc.UnderlayDwfDefinitions
		case "PDFUNDERLAY":
			table = ld.doc.UnderlayPdfDefinitions
		}
		name := r.str(340, "")
		def, ok := table.Item(name)
		if !ok {
			return nil, ErrFormat("%s references unknown definition «%s»", r.name, name)
		}
		u := drawing.NewUnderlay(def, r.point(10, drawing.Vector3{}))
		u.Scale = drawing.Vector3{X: r.f64(41, 1), Y: r.f64(42, 1), Z: r.f64(43, 1)}
		u.Rotation = r.f64(50, 0)
		e = u
	}

	ld.entityCommon(e, r)
	return e, nil
}

// hatchPaths resolves the 330 boundary references of a hatch record,
// grouped into contours by the 92 edge counters.
func (ld *loader) hatchPaths(r record, block *drawing.Block) ([]*drawing.HatchBoundaryPath, error) {
	var paths []*drawing.HatchBoundaryPath
	for _, t := range r.tags {
		switch t.Code {
		case 92:
			paths = append(paths, &drawing.HatchBoundaryPath{})
		case 330:
			if len(paths) == 0 {
				continue
			}
			be, err := ld.adoptEntity(block, t.AsString())
			if err != nil {
				return nil, err
			}
			last := paths[len(paths)-1]
			last.Entities = append(last.Entities, be)
		}
	}
	// drop contours whose edges were all lost
	out := paths[:0]
	for _, p := range paths {
		if len(p.Entities) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

// adoptEntity detaches a loaded entity from its block so a dependent
// can adopt it, keeping the stream handle. Registration of the
// dependent re-attaches it.
func (ld *loader) adoptEntity(block *drawing.Block, handle string) (drawing.Entity, error) {
	e, ok := ld.byHandle[handle]
	if !ok {
		return nil, ErrFormat("dangling entity reference «%s»", handle)
	}
	if e.Owner() != nil {
		if !block.Entities().Remove(e) {
			return nil, ErrFormat("entity «%s» is not a member of block «%s»", handle, block.Name())
		}
		drawing.RestoreHandle(e, handle)
	}
	return e, nil
}

//—————————————————————————————
//— Objects ———————————————————
//—————————————————————————————

func (ld *loader) objects(body []tagio.Tag) error {
	var layouts []record
	for _, r := range splitRecords(body) {
		switch r.name {
		case "LAYOUT":
			layouts = append(layouts, r)
		case "MLINESTYLE":
			ld.loadMLineStyle(r)
		case "IMAGEDEF":
			name := r.str(2, "")
			if _, ok := ld.doc.ImageDefinitions.Item(name); ok {
				continue
			}
			d := drawing.NewImageDefinition(name, r.str(1, ""),
				int(r.f64(10, 0)), int(r.f64(20, 0)))
			d.PixelSize = r.f64(141, d.PixelSize)
			restore(ld.doc.ImageDefinitions, d, r)
		case "DGNDEFINITION":
			ld.loadUnderlayDef(r, drawing.UnderlayDgn, ld.doc.UnderlayDgnDefinitions)
		case "DWFDEFINITION":
			ld.loadUnderlayDef(r, drawing.UnderlayDwf, ld.doc.UnderlayDwfDefinitions)
		case "PDFDEFINITION":
			ld.loadUnderlayDef(r, drawing.UnderlayPdf, ld.doc.UnderlayPdfDefinitions)
		default:
			if logger.IsVerbose() {
				logger.Verbose("skip object «", r.name, "»")
			}
		}
	}
	ld.loadLayouts(layouts)
	return nil
}

// loadLayouts registers layouts in tab order: registration links each
// to the first free paper space block, ascending order reproduces the
// persisted linkage.
func (ld *loader) loadLayouts(rows []record) {
	slices.SortFunc(rows, func(a, b record) bool {
		return a.i16(71, 0) < b.i16(71, 0)
	})
	for _, r := range rows {
		name := r.str(1, "")
		l, ok := ld.doc.Layouts.Item(name)
		if !ok {
			l = drawing.NewLayout(name)
			if h := r.str(5, ""); h != "" {
				drawing.RestoreHandle(l, h)
			}
			ld.doc.Layouts.Add(l)
		}
		l.TabOrder = int(r.i16(71, int16(l.TabOrder)))
		l.MinLimit = r.point2(10, l.MinLimit)
		l.MaxLimit = r.point2(11, l.MaxLimit)
	}
}

func (ld *loader) loadMLineStyle(r record) {
	name := r.str(2, "")
	s, ok := ld.doc.MLineStyles.Item(name)
	if !ok {
		s = drawing.NewMLineStyle(name)
		if h := r.str(5, ""); h != "" {
			drawing.RestoreHandle(s, h)
		}
		ld.doc.MLineStyles.Add(s)
	}
	s.Description = r.str(3, s.Description)
	s.StartAngle = r.f64(51, s.StartAngle)
	s.EndAngle = r.f64(52, s.EndAngle)

	// the stock ±0.5 pair gives way to the persisted elements
	s.Elements().Clear()
	var cur *drawing.MLineStyleElement
	for _, t := range r.tags {
		switch t.Code {
		case 49:
			cur = drawing.NewMLineStyleElement(t.AsFloat())
			s.Elements().Add(cur)
		case 62:
			if cur != nil && t.AsInt() >= 1 && t.AsInt() <= 255 {
				cur.Color = drawing.ColorFromIndex(int16(t.AsInt()))
			}
		case 6:
			if cur != nil {
				cur.SetLinetype(ld.linetypeRef(t.AsString()))
			}
		}
	}
}

func (ld *loader) loadUnderlayDef(r record, utype drawing.UnderlayType, table *drawing.Table[*drawing.UnderlayDefinition]) {
	name := r.str(2, "")
	if _, ok := table.Item(name); ok {
		return
	}
	d := drawing.NewUnderlayDefinition(name, r.str(1, ""), utype)
	d.Page = r.str(3, d.Page)
	restore(table, d, r)
}

//—————————————————————————————
//— Shared resource lookups ———
//—————————————————————————————

// layerRef resolves a layer by name, canonical when registered, fresh
// otherwise: registration interns it either way.
func (ld *loader) layerRef(name string) *drawing.Layer {
	if l, ok := ld.doc.Layers.Item(name); ok {
		return l
	}
	return drawing.NewLayer(name)
}

func (ld *loader) linetypeRef(name string) *drawing.Linetype {
	if lt, ok := ld.doc.Linetypes.Item(name); ok {
		return lt
	}
	return drawing.NewLinetype(name)
}

func (ld *loader) textStyleRef(name string) *drawing.TextStyle {
	if ts, ok := ld.doc.TextStyles.Item(name); ok {
		return ts
	}
	return drawing.NewTextStyle(name, "simplex.shx")
}

func (ld *loader) dimStyleRef(name string) *drawing.DimensionStyle {
	if ds, ok := ld.doc.DimensionStyles.Item(name); ok {
		return ds
	}
	return drawing.NewDimensionStyle(name)
}

func (ld *loader) loadXData(o interface{ XData() drawing.XDataMap }, r record) {
	var cur *drawing.XData
	for _, t := range r.tags {
		switch {
		case t.Code == 1001:
			cur = &drawing.XData{Registry: ld.appRegRef(t.AsString())}
			o.XData().Add(cur)
		case cur != nil && t.Code >= 1000 && t.Code <= 1071:
			cur.Records = append(cur.Records, drawing.XDataRecord{Code: t.Code, Value: t.Value})
		}
	}
}

func (ld *loader) appRegRef(name string) *drawing.ApplicationRegistry {
	if reg, ok := ld.doc.ApplicationRegistries.Item(name); ok {
		return reg
	}
	return drawing.NewApplicationRegistry(name)
}
