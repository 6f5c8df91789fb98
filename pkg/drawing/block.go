/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "github.com/voedger/dxf/pkg/observe"

// BlockRecord is the document side twin of a block: layout linkage and
// per-document insertion settings. Every block owns exactly one record;
// they are created and destroyed together.
//
// # Implements:
//   - DxfObject
type BlockRecord struct {
	dxfObject

	Units            DrawingUnits
	AllowExploding   bool
	ScaleUniformly   bool

	layout *Layout
}

func newBlockRecord() *BlockRecord {
	return &BlockRecord{
		dxfObject:      dxfObject{codeName: codeNameBlockRecord},
		Units:          UnitsUnitless,
		AllowExploding: true,
	}
}

// Layout returns the layout displayed through this block, or nil for
// plain definition blocks.
func (r *BlockRecord) Layout() *Layout { return r.layout }

// DrawingUnits is the insertion scale unit of a block.
type DrawingUnits uint8

const (
	UnitsUnitless DrawingUnits = iota
	UnitsInches
	UnitsFeet
	UnitsMillimeters
	UnitsCentimeters
	UnitsMeters
)

// Block is a reusable definition: a named container of entities and
// attribute definitions, referenced by Insert entities and layouts.
//
// Entities added to the block while it is registered are attached to
// the owning document on the same call stack; entities of a detached
// block are attached in bulk when the block is registered.
//
// # Implements:
//   - TableObject
type Block struct {
	tableObject

	Origin      Vector3
	Description string

	record     *BlockRecord
	entities   *observe.Collection[Entity]
	attributes *observe.Dictionary[string, *AttributeDefinition]

	document *Document // nil while detached

	layer         *Layer
	onLayerChange func(*Layer) *Layer
}

// NewBlock builds a detached block.
//
// # Panics:
//   - if name is empty or malformed.
func NewBlock(name string) *Block {
	b := &Block{
		tableObject: makeTableObject(name, codeNameBlock),
		record:      newBlockRecord(),
		entities:    observe.NewCollection[Entity](),
		attributes:  observe.NewDictionary[string, *AttributeDefinition](),
		layer:       NewLayer(DefaultLayerName),
	}

	b.entities.Observe(&observe.CollectionObserver[Entity]{
		BeforeAdd: func(e Entity) (Entity, bool) {
			// entities owned elsewhere cannot be adopted
			return e, (e != nil) && (e.Owner() == nil)
		},
		AfterAdd: func(e Entity) {
			e.setOwner(b)
			if b.document != nil {
				b.document.attachEntity(e, b)
			}
		},
		BeforeRemove: func(e Entity) (Entity, bool) {
			// an entity some other entity depends on stays
			return e, !e.HasReactors()
		},
		AfterRemove: func(e Entity) {
			if b.document != nil {
				b.document.detachEntity(e, b)
			}
			e.setOwner(nil)
		},
	})

	b.attributes.Observe(&observe.DictionaryObserver[string, *AttributeDefinition]{
		BeforeAdd: func(tag string, ad *AttributeDefinition) (*AttributeDefinition, bool) {
			return ad, (ad != nil) && (ad.Owner() == nil) && (tag == ad.Tag)
		},
		AfterAdd: func(_ string, ad *AttributeDefinition) {
			ad.setOwner(b)
			if b.document != nil {
				b.document.attachEntity(ad, b)
			}
		},
		BeforeRemove: func(_ string, ad *AttributeDefinition) (*AttributeDefinition, bool) {
			return ad, !ad.HasReactors()
		},
		AfterRemove: func(_ string, ad *AttributeDefinition) {
			if b.document != nil {
				b.document.detachEntity(ad, b)
			}
			ad.setOwner(nil)
		},
	})

	return b
}

// Record returns the document side twin of the block. Never nil.
func (b *Block) Record() *BlockRecord { return b.record }

// Entities returns the entity collection of the block.
func (b *Block) Entities() *observe.Collection[Entity] { return b.entities }

// AttributeDefinitions returns the attribute definitions of the block,
// keyed by attribute tag.
func (b *Block) AttributeDefinitions() *observe.Dictionary[string, *AttributeDefinition] {
	return b.attributes
}

// Document returns the owning document, nil while the block is
// detached.
func (b *Block) Document() *Document { return b.document }

func (b *Block) Layer() *Layer { return b.layer }

// SetLayer reassigns the block layer.
//
// # Panics:
//   - if layer is nil (ErrMissedError).
func (b *Block) SetLayer(layer *Layer) {
	if layer == nil {
		panic(ErrMissed("block «%s» layer", b.Name()))
	}
	if b.onLayerChange != nil {
		layer = b.onLayerChange(layer)
	}
	b.layer = layer
}

func (b *Block) setLayerObserver(f func(*Layer) *Layer) { b.onLayerChange = f }
