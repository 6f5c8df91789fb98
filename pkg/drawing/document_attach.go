/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import (
	"github.com/untillpro/goutils/logger"
)

// attachEntity threads a new entity through every registry it touches:
// kind-specific resources first, then the layer and linetype every
// entity carries, the handle index, and finally the reassignment
// observers. The entity ownership itself is wired by the block entity
// collection; attach only registers.
//
// detachEntity is the exact mirror: for every reference attach records
// there is a matching removal in detach. Keep the symmetry when adding
// entity kinds.
//
// # Panics:
//   - if entity is nil (ErrMissedError),
//   - if the entity kind is unknown (ErrUnsupportedError).
func (doc *Document) attachEntity(entity Entity, block *Block) {
	if entity == nil {
		panic(ErrMissed("entity"))
	}

	if entity.Handle() == "" {
		doc.assignHandle(entity)
	}

	if logger.IsVerbose() {
		logger.Verbose("attach ", entity.CodeName(), " «", entity.Handle(), "» to block «", block.Name(), "»")
	}

	switch e := entity.(type) {
	case *Line, *Point, *Circle, *Arc, *Ellipse, *LwPolyline, *Solid, *Face3D, *Wipeout:
		// no kind-specific resources

	case *Text:
		e.style = intern(doc.TextStyles, e.style, e)
		e.setStyleObserver(func(s *TextStyle) *TextStyle {
			release(doc.TextStyles, e.style, e)
			return intern(doc.TextStyles, s, e)
		})

	case *MText:
		e.style = intern(doc.TextStyles, e.style, e)
		e.setStyleObserver(func(s *TextStyle) *TextStyle {
			release(doc.TextStyles, e.style, e)
			return intern(doc.TextStyles, s, e)
		})

	case *AttributeDefinition:
		e.style = intern(doc.TextStyles, e.style, e)
		e.setStyleObserver(func(s *TextStyle) *TextStyle {
			release(doc.TextStyles, e.style, e)
			return intern(doc.TextStyles, s, e)
		})

	case *Insert:
		e.block = intern(doc.Blocks, e.block, e)
		for _, a := range e.attributes {
			doc.attachAttribute(a, e)
		}

	case *Hatch:
		for _, path := range e.BoundaryPaths {
			for _, be := range path.Entities {
				if be.Owner() != nil {
					panic(ErrInvalid("hatch boundary entity «%s» already belongs to a block", be.CodeName()))
				}
				block.entities.Add(be)
				be.addReactor(e)
			}
		}

	case *Dimension:
		e.style = intern(doc.DimensionStyles, e.style, e)
		e.setStyleObserver(func(s *DimensionStyle) *DimensionStyle {
			release(doc.DimensionStyles, e.style, e)
			return intern(doc.DimensionStyles, s, e)
		})
		if e.block != nil {
			e.block = intern(doc.Blocks, e.block, e)
		}
		doc.internDimOverrides(e)

	case *MLine:
		e.style = intern(doc.MLineStyles, e.style, e)
		e.setStyleObserver(func(s *MLineStyle) *MLineStyle {
			release(doc.MLineStyles, e.style, e)
			return intern(doc.MLineStyles, s, e)
		})

	case *Leader:
		e.style = intern(doc.DimensionStyles, e.style, e)
		e.setStyleObserver(func(s *DimensionStyle) *DimensionStyle {
			release(doc.DimensionStyles, e.style, e)
			return intern(doc.DimensionStyles, s, e)
		})
		if e.annotation != nil {
			block.entities.Add(e.annotation)
			e.annotation.addReactor(e)
		}

	case *Image:
		e.definition = intern(doc.ImageDefinitions, e.definition, e)
		r := newImageDefinitionReactor(e.Handle())
		doc.assignHandle(r)
		r.setOwner(e.definition)
		doc.registerAdded(r)
		e.definition.reactors[e.Handle()] = r

	case *Underlay:
		t := doc.underlayDefinitions(e.definition.Type())
		e.definition = intern(t, e.definition, e)

	case *Viewport:
		if e.clippingBoundary != nil {
			block.entities.Add(e.clippingBoundary)
			e.clippingBoundary.addReactor(e)
		}

	default:
		panic(ErrUnsupported("entity type %v", entity.Type()))
	}

	entity.replaceLayer(intern(doc.Layers, entity.Layer(), entity))
	entity.replaceLinetype(intern(doc.Linetypes, entity.Linetype(), entity))

	doc.registerAdded(entity)
	doc.internXData(entity.XData(), entity)

	entity.setLayerObserver(func(l *Layer) *Layer {
		release(doc.Layers, entity.Layer(), entity)
		return intern(doc.Layers, l, entity)
	})
	entity.setLinetypeObserver(func(lt *Linetype) *Linetype {
		release(doc.Linetypes, entity.Linetype(), entity)
		return intern(doc.Linetypes, lt, entity)
	})
}

// detachEntity unthreads an entity from every registry attach touched.
//
// # Panics:
//   - if entity is nil (ErrMissedError),
//   - if the entity kind is unknown (ErrUnsupportedError).
func (doc *Document) detachEntity(entity Entity, block *Block) {
	if entity == nil {
		panic(ErrMissed("entity"))
	}

	if logger.IsVerbose() {
		logger.Verbose("detach ", entity.CodeName(), " «", entity.Handle(), "» from block «", block.Name(), "»")
	}

	switch e := entity.(type) {
	case *Line, *Point, *Circle, *Arc, *Ellipse, *LwPolyline, *Solid, *Face3D, *Wipeout:
		// no kind-specific resources

	case *Text:
		release(doc.TextStyles, e.style, e)
		e.setStyleObserver(nil)

	case *MText:
		release(doc.TextStyles, e.style, e)
		e.setStyleObserver(nil)

	case *AttributeDefinition:
		release(doc.TextStyles, e.style, e)
		e.setStyleObserver(nil)

	case *Insert:
		release(doc.Blocks, e.block, e)
		for _, a := range e.attributes {
			doc.detachAttribute(a)
		}

	case *Hatch:
		for _, path := range e.BoundaryPaths {
			for _, be := range path.Entities {
				be.delReactor(e)
				block.entities.Remove(be)
			}
		}

	case *Dimension:
		release(doc.DimensionStyles, e.style, e)
		e.setStyleObserver(nil)
		if e.block != nil {
			release(doc.Blocks, e.block, e)
		}
		doc.releaseDimOverrides(e)

	case *MLine:
		release(doc.MLineStyles, e.style, e)
		e.setStyleObserver(nil)

	case *Leader:
		release(doc.DimensionStyles, e.style, e)
		e.setStyleObserver(nil)
		if e.annotation != nil {
			e.annotation.delReactor(e)
			block.entities.Remove(e.annotation)
		}

	case *Image:
		if r, ok := e.definition.reactors[e.Handle()]; ok {
			doc.unregisterAdded(r)
			r.setOwner(nil)
			delete(e.definition.reactors, e.Handle())
		}
		release(doc.ImageDefinitions, e.definition, e)

	case *Underlay:
		release(doc.underlayDefinitions(e.definition.Type()), e.definition, e)

	case *Viewport:
		if e.clippingBoundary != nil {
			e.clippingBoundary.delReactor(e)
			block.entities.Remove(e.clippingBoundary)
		}

	default:
		panic(ErrUnsupported("entity type %v", entity.Type()))
	}

	release(doc.Layers, entity.Layer(), entity)
	release(doc.Linetypes, entity.Linetype(), entity)
	doc.releaseXData(entity.XData(), entity)
	doc.unregisterAdded(entity)

	entity.setLayerObserver(nil)
	entity.setLinetypeObserver(nil)
	entity.setHandle("")
}

// attachAttribute registers one attribute of an insert. Attributes are
// owned by their insert, not by a block, but their layer, linetype and
// text style are interned independently.
func (doc *Document) attachAttribute(a *Attribute, owner *Insert) {
	if a.Handle() == "" {
		doc.assignHandle(a)
	}
	a.setOwner(owner)

	a.style = intern(doc.TextStyles, a.style, a)
	a.setStyleObserver(func(s *TextStyle) *TextStyle {
		release(doc.TextStyles, a.style, a)
		return intern(doc.TextStyles, s, a)
	})

	a.replaceLayer(intern(doc.Layers, a.Layer(), a))
	a.replaceLinetype(intern(doc.Linetypes, a.Linetype(), a))

	doc.registerAdded(a)
	doc.internXData(a.XData(), a)

	a.setLayerObserver(func(l *Layer) *Layer {
		release(doc.Layers, a.Layer(), a)
		return intern(doc.Layers, l, a)
	})
	a.setLinetypeObserver(func(lt *Linetype) *Linetype {
		release(doc.Linetypes, a.Linetype(), a)
		return intern(doc.Linetypes, lt, a)
	})
}

func (doc *Document) detachAttribute(a *Attribute) {
	release(doc.TextStyles, a.style, a)
	a.setStyleObserver(nil)

	release(doc.Layers, a.Layer(), a)
	release(doc.Linetypes, a.Linetype(), a)
	doc.releaseXData(a.XData(), a)
	doc.unregisterAdded(a)

	a.setLayerObserver(nil)
	a.setLinetypeObserver(nil)
	a.setHandle("")
	a.setOwner(nil)
}

// internDimOverrides interns every table object value of the
// per-dimension style overrides, replacing it with the canonical
// instance.
func (doc *Document) internDimOverrides(d *Dimension) {
	for k, v := range d.StyleOverrides {
		switch o := v.(type) {
		case *TextStyle:
			d.StyleOverrides[k] = intern(doc.TextStyles, o, d)
		case *Linetype:
			d.StyleOverrides[k] = intern(doc.Linetypes, o, d)
		case *Block:
			d.StyleOverrides[k] = intern(doc.Blocks, o, d)
		}
	}
}

func (doc *Document) releaseDimOverrides(d *Dimension) {
	for _, v := range d.StyleOverrides {
		switch o := v.(type) {
		case *TextStyle:
			release(doc.TextStyles, o, d)
		case *Linetype:
			release(doc.Linetypes, o, d)
		case *Block:
			release(doc.Blocks, o, d)
		}
	}
}

// underlayDefinitions picks the definition table matching an underlay
// subtype.
func (doc *Document) underlayDefinitions(t UnderlayType) *Table[*UnderlayDefinition] {
	switch t {
	case UnderlayDwf:
		return doc.UnderlayDwfDefinitions
	case UnderlayPdf:
		return doc.UnderlayPdfDefinitions
	}
	return doc.UnderlayDgnDefinitions
}
