/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// AttributeDefinition is the template of an attribute inside a block:
// tag, prompt, default value and text placement. It lives in the block
// attribute definition dictionary, keyed by tag.
//
// # Implements:
//   - Entity
type AttributeDefinition struct {
	entityObject

	Tag      string
	Prompt   string
	Value    string
	Position Vector3
	Height   float64
	Rotation float64

	style         *TextStyle
	onStyleChange func(*TextStyle) *TextStyle
}

// NewAttributeDefinition builds a detached definition for tag.
//
// # Panics:
//   - if tag is empty,
//   - if height is not positive.
func NewAttributeDefinition(tag string, height float64) *AttributeDefinition {
	if tag == "" {
		panic(ErrMissed("attribute definition tag"))
	}
	if height <= 0 {
		panic(ErrInvalid("attribute definition «%s» height %f must be positive", tag, height))
	}
	return &AttributeDefinition{
		entityObject: makeEntityObject(EntityType_AttributeDefinition, codeNameAttDef),
		Tag:          tag,
		Height:       height,
		style:        NewTextStyle(DefaultTextStyleName, "simplex.shx"),
	}
}

func (ad *AttributeDefinition) Style() *TextStyle { return ad.style }

// SetStyle reassigns the text style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (ad *AttributeDefinition) SetStyle(style *TextStyle) {
	if style == nil {
		panic(ErrMissed("attribute definition «%s» text style", ad.Tag))
	}
	if ad.onStyleChange != nil {
		style = ad.onStyleChange(style)
	}
	ad.style = style
}

func (ad *AttributeDefinition) setStyleObserver(f func(*TextStyle) *TextStyle) {
	ad.onStyleChange = f
}

// Attribute is one filled-in attribute carried by an insert. It is
// owned by its insert, not by a block, and is registered and released
// together with it. Its layer, linetype and style are interned
// independently of the insert's.
//
// # Implements:
//   - Entity (internal only: attributes are not attachable standalone)
type Attribute struct {
	entityObject

	Tag      string
	Value    string
	Position Vector3
	Height   float64
	Rotation float64

	definition *AttributeDefinition

	style         *TextStyle
	onStyleChange func(*TextStyle) *TextStyle
}

// NewAttribute builds an attribute from its definition, inheriting tag,
// value and placement.
//
// # Panics:
//   - if definition is nil (ErrMissedError).
func NewAttribute(definition *AttributeDefinition) *Attribute {
	if definition == nil {
		panic(ErrMissed("attribute definition"))
	}
	a := &Attribute{
		entityObject: makeEntityObject(EntityType_Attribute, codeNameAttrib),
		Tag:          definition.Tag,
		Value:        definition.Value,
		Position:     definition.Position,
		Height:       definition.Height,
		Rotation:     definition.Rotation,
		definition:   definition,
		style:        definition.style,
	}
	return a
}

// Definition returns the attribute definition this attribute was built
// from.
func (a *Attribute) Definition() *AttributeDefinition { return a.definition }

func (a *Attribute) Style() *TextStyle { return a.style }

// SetStyle reassigns the text style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (a *Attribute) SetStyle(style *TextStyle) {
	if style == nil {
		panic(ErrMissed("attribute «%s» text style", a.Tag))
	}
	if a.onStyleChange != nil {
		style = a.onStyleChange(style)
	}
	a.style = style
}

func (a *Attribute) setStyleObserver(f func(*TextStyle) *TextStyle) { a.onStyleChange = f }

// Insert places a block reference at a position, optionally carrying
// one attribute per attribute definition of the block.
//
// # Implements:
//   - Entity
type Insert struct {
	entityObject

	Position Vector3
	Scale    Vector3
	Rotation float64

	block      *Block
	attributes []*Attribute
}

// NewInsert builds an insert of block, with one attribute per attribute
// definition the block carries.
//
// # Panics:
//   - if block is nil (ErrMissedError).
func NewInsert(block *Block, position Vector3) *Insert {
	if block == nil {
		panic(ErrMissed("insert block"))
	}
	ins := &Insert{
		entityObject: makeEntityObject(EntityType_Insert, codeNameInsert),
		Position:     position,
		Scale:        Vector3{1, 1, 1},
		block:        block,
	}
	block.AttributeDefinitions().Enum(func(_ string, ad *AttributeDefinition) {
		ins.attributes = append(ins.attributes, NewAttribute(ad))
	})
	return ins
}

// Block returns the inserted definition block. The definition is fixed
// at construction.
func (ins *Insert) Block() *Block { return ins.block }

// Attributes returns the attributes carried by the insert.
func (ins *Insert) Attributes() []*Attribute { return ins.attributes }

// Attribute returns the carried attribute with the given tag.
func (ins *Insert) Attribute(tag string) (*Attribute, bool) {
	for _, a := range ins.attributes {
		if a.Tag == tag {
			return a, true
		}
	}
	return nil, false
}
