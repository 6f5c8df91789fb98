/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"strconv"
	"strings"
)

// Document is the graph root: it owns one table per resource kind, the
// handle counter and the handle index of everything persisted.
//
// All operations are synchronous and single-threaded; notifications run
// reentrantly on the mutating call stack. A concurrent caller must
// serialize access to the whole document.
//
// # Implements:
//   - DxfObject
type Document struct {
	dxfObject

	Layers                *Table[*Layer]
	Linetypes             *Table[*Linetype]
	TextStyles            *Table[*TextStyle]
	DimensionStyles       *Table[*DimensionStyle]
	MLineStyles           *Table[*MLineStyle]
	ApplicationRegistries *Table[*ApplicationRegistry]
	Views                 *Table[*View]
	UCSs                  *Table[*UCS]
	VPorts                *Table[*VPort]
	Blocks                *Table[*Block]
	Layouts               *Table[*Layout]

	ImageDefinitions       *Table[*ImageDefinition]
	UnderlayDgnDefinitions *Table[*UnderlayDefinition]
	UnderlayDwfDefinitions *Table[*UnderlayDefinition]
	UnderlayPdfDefinitions *Table[*UnderlayDefinition]

	// Comments are written to, and read from, the stream preamble.
	Comments []string

	numHandles   int64
	added        map[string]DxfObject
	activeLayout string
}

// NewDocument builds a document carrying the reserved defaults: the «0»
// layer, the «ByLayer», «ByBlock» and «Continuous» linetypes, the
// «Standard» text, dimension and multiline styles, the «ACAD»
// application registry, the «*Active» viewport configuration, the model
// and paper space blocks and the «Model» layout.
func NewDocument() *Document {
	doc := &Document{
		dxfObject:    dxfObject{codeName: codeNameDocument},
		added:        make(map[string]DxfObject),
		activeLayout: DefaultLayoutName,
	}

	doc.Layers = newTable[*Layer](doc, codeNameLayer, maxTableEntries, doc.internLayer, doc.releaseLayer)
	doc.Linetypes = newTable[*Linetype](doc, codeNameLinetype, maxTableEntries, doc.internLinetype, doc.releaseLinetype)
	doc.TextStyles = newTable[*TextStyle](doc, codeNameTextStyle, maxTableEntries, nil, nil)
	doc.DimensionStyles = newTable[*DimensionStyle](doc, codeNameDimStyle, maxTableEntries, doc.internDimStyle, doc.releaseDimStyle)
	doc.MLineStyles = newTable[*MLineStyle](doc, codeNameMLineStyle, maxTableEntries, doc.internMLineStyle, doc.releaseMLineStyle)
	doc.ApplicationRegistries = newTable[*ApplicationRegistry](doc, codeNameAppReg, maxTableEntries, nil, nil)
	doc.Views = newTable[*View](doc, codeNameView, maxTableEntries, nil, nil)
	doc.UCSs = newTable[*UCS](doc, codeNameUcs, maxTableEntries, nil, nil)
	doc.VPorts = newTable[*VPort](doc, codeNameVPort, maxTableEntries, nil, nil)
	doc.Blocks = newTable[*Block](doc, codeNameBlock, maxUnboundedEntries, doc.internBlock, doc.releaseBlock)
	doc.Layouts = newTable[*Layout](doc, codeNameLayout, maxUnboundedEntries, doc.internLayout, doc.releaseLayout)

	doc.ImageDefinitions = newTable[*ImageDefinition](doc, codeNameImageDef, maxUnboundedEntries, nil, nil)
	doc.UnderlayDgnDefinitions = newTable[*UnderlayDefinition](doc, codeNameUnderlayDgnDef, maxUnboundedEntries, nil, nil)
	doc.UnderlayDwfDefinitions = newTable[*UnderlayDefinition](doc, codeNameUnderlayDwfDef, maxUnboundedEntries, nil, nil)
	doc.UnderlayPdfDefinitions = newTable[*UnderlayDefinition](doc, codeNameUnderlayPdfDef, maxUnboundedEntries, nil, nil)

	doc.seedDefaults()

	return doc
}

// seedDefaults registers the reserved defaults. Seeding skips the
// recursive intern on purpose: a fresh document reports zero references
// for every default, while the change observers are wired exactly as
// for regular entries.
func (doc *Document) seedDefaults() {
	byLayer := doc.Linetypes.seed(NewLinetype(ByLayerLinetypeName))
	byBlock := doc.Linetypes.seed(NewLinetype(ByBlockLinetypeName))

	continuous := NewLinetype(ContinuousLinetypeName)
	continuous.Description = "Solid line"
	doc.Linetypes.seed(continuous)

	layer0 := NewLayer(DefaultLayerName)
	layer0.linetype = continuous
	doc.Layers.seed(layer0)
	doc.wireLayer(layer0)

	textStyle := doc.TextStyles.seed(NewTextStyle(DefaultTextStyleName, "simplex.shx"))

	doc.ApplicationRegistries.seed(NewApplicationRegistry(DefaultAppRegName))

	dimStyle := NewDimensionStyle(DefaultDimStyleName)
	dimStyle.textStyle = textStyle
	dimStyle.dimLineLinetype = byBlock
	dimStyle.extLine1Linetype = byBlock
	dimStyle.extLine2Linetype = byBlock
	doc.DimensionStyles.seed(dimStyle)
	doc.wireDimStyle(dimStyle)

	mlStyle := NewMLineStyle(DefaultMLineStyleName)
	mlStyle.elements.Enum(func(e *MLineStyleElement) {
		e.linetype = byLayer
		doc.wireMLineStyleElement(mlStyle, e)
	})
	doc.MLineStyles.seed(mlStyle)
	doc.wireMLineStyle(mlStyle)

	doc.VPorts.seed(NewVPort(DefaultVPortName))

	model := NewBlock(ModelSpaceBlockName)
	model.layer = layer0
	doc.Blocks.seed(model)
	doc.wireBlock(model)

	paper := NewBlock(PaperSpaceBlockName)
	paper.layer = layer0
	doc.Blocks.seed(paper)
	doc.wireBlock(paper)

	modelLayout := NewLayout(DefaultLayoutName)
	modelLayout.block = model
	model.record.layout = modelLayout
	doc.Layouts.seed(modelLayout)
}

//—————————————————————————————
//— Entities ——————————————————
//—————————————————————————————

// AddEntity attaches entity to the active layout.
//
// # Panics:
//   - if entity is nil or already owned (ErrRejected via the block
//     entity collection policy).
func (doc *Document) AddEntity(entity Entity) {
	doc.ActiveLayout().AssociatedBlock().Entities().Add(entity)
}

// RemoveEntity detaches entity. Returns false, never an error, if the
// entity is nil, not owned by this document, or still has reactors.
func (doc *Document) RemoveEntity(entity Entity) bool {
	if entity == nil {
		return false
	}
	block, ok := entity.Owner().(*Block)
	if !ok || (block.document != doc) {
		return false
	}
	return block.Entities().Remove(entity)
}

// Entities returns the entities of the active layout.
func (doc *Document) Entities() []Entity {
	return doc.ActiveLayout().AssociatedBlock().Entities().Items()
}

// ActiveLayout returns the layout new entities go to.
func (doc *Document) ActiveLayout() *Layout {
	layout, _ := doc.Layouts.Item(doc.activeLayout)
	return layout
}

// SetActiveLayout selects the layout new entities go to. Returns false
// if no layout is registered under name.
func (doc *Document) SetActiveLayout(name string) bool {
	layout, ok := doc.Layouts.Item(name)
	if !ok {
		return false
	}
	doc.activeLayout = layout.Name()
	return true
}

//—————————————————————————————
//— Handles ———————————————————
//—————————————————————————————

// NumHandles returns the current value of the handle counter.
func (doc *Document) NumHandles() int64 { return doc.numHandles }

// RaiseHandleSeed raises the handle counter to at least n. Intended for
// stream readers seeding the counter from the highest handle found in a
// file; the counter never goes backwards.
func (doc *Document) RaiseHandleSeed(n int64) {
	if n > doc.numHandles {
		doc.numHandles = n
	}
}

// AddedObject returns the registered object with the given handle.
func (doc *Document) AddedObject(handle string) (DxfObject, bool) {
	o, ok := doc.added[handle]
	return o, ok
}

// AddedCount returns the number of registered objects.
func (doc *Document) AddedCount() int { return len(doc.added) }

// assignHandle draws the next handle from the document counter. The
// counter is incremented exactly once per assignment.
func (doc *Document) assignHandle(o DxfObject) {
	doc.numHandles++
	o.setHandle(strings.ToUpper(strconv.FormatInt(doc.numHandles, 16)))
}

// registerAdded records o in the handle index. Every object with a
// handle appears there exactly once.
//
// # Panics:
//   - if o has no handle (ErrMissedError),
//   - if the handle is already registered (ErrAlreadyExistsError).
func (doc *Document) registerAdded(o DxfObject) {
	h := o.Handle()
	if h == "" {
		panic(ErrMissed("handle of «%s»", o.CodeName()))
	}
	if _, ok := doc.added[h]; ok {
		panic(ErrAlreadyExists("handle «%s»", h))
	}
	doc.added[h] = o
}

func (doc *Document) unregisterAdded(o DxfObject) {
	delete(doc.added, o.Handle())
}

//—————————————————————————————
//— Cross-reference wiring ————
//—————————————————————————————

func (doc *Document) internXData(m XDataMap, dep DxfObject) {
	for _, x := range m {
		x.Registry = intern(doc.ApplicationRegistries, x.Registry, dep)
	}
}

func (doc *Document) releaseXData(m XDataMap, dep DxfObject) {
	for _, x := range m {
		release(doc.ApplicationRegistries, x.Registry, dep)
	}
}

func (doc *Document) internLayer(l *Layer) {
	l.linetype = intern(doc.Linetypes, l.linetype, l)
	doc.wireLayer(l)
}

func (doc *Document) wireLayer(l *Layer) {
	l.setLinetypeObserver(func(lt *Linetype) *Linetype {
		release(doc.Linetypes, l.linetype, l)
		return intern(doc.Linetypes, lt, l)
	})
}

func (doc *Document) releaseLayer(l *Layer) {
	release(doc.Linetypes, l.linetype, l)
	l.setLinetypeObserver(nil)
}

func (doc *Document) internLinetype(lt *Linetype) {
	for i := range lt.Segments {
		if s := lt.Segments[i].Style; s != nil {
			lt.Segments[i].Style = intern(doc.TextStyles, s, lt)
		}
	}
}

func (doc *Document) releaseLinetype(lt *Linetype) {
	for i := range lt.Segments {
		if s := lt.Segments[i].Style; s != nil {
			release(doc.TextStyles, s, lt)
		}
	}
}

func (doc *Document) internDimStyle(s *DimensionStyle) {
	s.textStyle = intern(doc.TextStyles, s.textStyle, s)
	if s.dimArrow1 != nil {
		s.dimArrow1 = intern(doc.Blocks, s.dimArrow1, s)
	}
	if s.dimArrow2 != nil {
		s.dimArrow2 = intern(doc.Blocks, s.dimArrow2, s)
	}
	if s.leaderArrow != nil {
		s.leaderArrow = intern(doc.Blocks, s.leaderArrow, s)
	}
	s.dimLineLinetype = intern(doc.Linetypes, s.dimLineLinetype, s)
	s.extLine1Linetype = intern(doc.Linetypes, s.extLine1Linetype, s)
	s.extLine2Linetype = intern(doc.Linetypes, s.extLine2Linetype, s)
	doc.wireDimStyle(s)
}

func (doc *Document) wireDimStyle(s *DimensionStyle) {
	s.onTextStyleChange = func(ts *TextStyle) *TextStyle {
		release(doc.TextStyles, s.textStyle, s)
		return intern(doc.TextStyles, ts, s)
	}
	s.onDimArrow1Change = func(b *Block) *Block {
		if s.dimArrow1 != nil {
			release(doc.Blocks, s.dimArrow1, s)
		}
		if b == nil {
			return nil
		}
		return intern(doc.Blocks, b, s)
	}
	s.onDimArrow2Change = func(b *Block) *Block {
		if s.dimArrow2 != nil {
			release(doc.Blocks, s.dimArrow2, s)
		}
		if b == nil {
			return nil
		}
		return intern(doc.Blocks, b, s)
	}
	s.onLeaderArrowChange = func(b *Block) *Block {
		if s.leaderArrow != nil {
			release(doc.Blocks, s.leaderArrow, s)
		}
		if b == nil {
			return nil
		}
		return intern(doc.Blocks, b, s)
	}
	s.onDimLineLinetypeChange = func(lt *Linetype) *Linetype {
		release(doc.Linetypes, s.dimLineLinetype, s)
		return intern(doc.Linetypes, lt, s)
	}
	s.onExtLine1LinetypeChange = func(lt *Linetype) *Linetype {
		release(doc.Linetypes, s.extLine1Linetype, s)
		return intern(doc.Linetypes, lt, s)
	}
	s.onExtLine2LinetypeChange = func(lt *Linetype) *Linetype {
		release(doc.Linetypes, s.extLine2Linetype, s)
		return intern(doc.Linetypes, lt, s)
	}
}

func (doc *Document) releaseDimStyle(s *DimensionStyle) {
	release(doc.TextStyles, s.textStyle, s)
	if s.dimArrow1 != nil {
		release(doc.Blocks, s.dimArrow1, s)
	}
	if s.dimArrow2 != nil {
		release(doc.Blocks, s.dimArrow2, s)
	}
	if s.leaderArrow != nil {
		release(doc.Blocks, s.leaderArrow, s)
	}
	release(doc.Linetypes, s.dimLineLinetype, s)
	release(doc.Linetypes, s.extLine1Linetype, s)
	release(doc.Linetypes, s.extLine2Linetype, s)
	s.onTextStyleChange = nil
	s.onDimArrow1Change = nil
	s.onDimArrow2Change = nil
	s.onLeaderArrowChange = nil
	s.onDimLineLinetypeChange = nil
	s.onExtLine1LinetypeChange = nil
	s.onExtLine2LinetypeChange = nil
}

func (doc *Document) internMLineStyle(s *MLineStyle) {
	s.elements.Enum(func(e *MLineStyleElement) {
		e.linetype = intern(doc.Linetypes, e.linetype, s)
		doc.wireMLineStyleElement(s, e)
	})
	doc.wireMLineStyle(s)
}

func (doc *Document) wireMLineStyleElement(s *MLineStyle, e *MLineStyleElement) {
	e.onLinetypeChange = func(lt *Linetype) *Linetype {
		release(doc.Linetypes, e.linetype, s)
		return intern(doc.Linetypes, lt, s)
	}
}

func (doc *Document) wireMLineStyle(s *MLineStyle) {
	s.onElementAdd = func(e *MLineStyleElement) {
		e.linetype = intern(doc.Linetypes, e.linetype, s)
		doc.wireMLineStyleElement(s, e)
	}
	s.onElementRemove = func(e *MLineStyleElement) {
		release(doc.Linetypes, e.linetype, s)
		e.onLinetypeChange = nil
	}
}

func (doc *Document) releaseMLineStyle(s *MLineStyle) {
	s.elements.Enum(func(e *MLineStyleElement) {
		release(doc.Linetypes, e.linetype, s)
		e.onLinetypeChange = nil
	})
	s.onElementAdd = nil
	s.onElementRemove = nil
}

func (doc *Document) internBlock(b *Block) {
	doc.wireBlock(b)
	b.layer = intern(doc.Layers, b.layer, b)
	b.entities.Enum(func(e Entity) {
		doc.attachEntity(e, b)
	})
	b.attributes.Enum(func(_ string, ad *AttributeDefinition) {
		doc.attachEntity(ad, b)
	})
}

func (doc *Document) wireBlock(b *Block) {
	b.document = doc
	if b.record.Handle() == "" {
		doc.assignHandle(b.record)
	}
	b.record.setOwner(doc.Blocks)
	doc.registerAdded(b.record)
	b.setLayerObserver(func(l *Layer) *Layer {
		release(doc.Layers, b.layer, b)
		return intern(doc.Layers, l, b)
	})
}

func (doc *Document) releaseBlock(b *Block) {
	// a hatch, leader or viewport detach removes its adopted dependents
	// from the collection; skip slots those removals already detached
	b.entities.Enum(func(e Entity) {
		if e.Handle() != "" {
			doc.detachEntity(e, b)
		}
	})
	b.attributes.Enum(func(_ string, ad *AttributeDefinition) {
		doc.detachEntity(ad, b)
	})
	release(doc.Layers, b.layer, b)
	b.setLayerObserver(nil)
	doc.unregisterAdded(b.record)
	b.record.setOwner(nil)
	b.record.setHandle("")
	b.document = nil
}

func (doc *Document) internLayout(l *Layout) {
	if l.block == nil {
		l.block = doc.paperSpaceBlock()
	} else {
		l.block = doc.Blocks.add(l.block)
	}
	doc.Blocks.addRef(l.block.Name(), l)
	l.block.record.layout = l
}

// paperSpaceBlock returns the first paper space block not yet linked to
// a layout, creating «*Paper_Space0», «*Paper_Space1», … when all are
// taken.
func (doc *Document) paperSpaceBlock() *Block {
	var free *Block
	doc.Blocks.Enum(func(b *Block) {
		if (free == nil) && (b.record.layout == nil) && strings.HasPrefix(b.Name(), PaperSpaceBlockName) {
			free = b
		}
	})
	if free != nil {
		return free
	}
	for n := 0; ; n++ {
		name := PaperSpaceBlockName + strconv.Itoa(n)
		if !doc.Blocks.Contains(name) {
			return doc.Blocks.add(NewBlock(name))
		}
	}
}

func (doc *Document) releaseLayout(l *Layout) {
	doc.Blocks.delRef(l.block.Name(), l)
	l.block.record.layout = nil
}
