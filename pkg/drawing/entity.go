/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "fmt"

// EntityType discriminates the drawable kinds the attach state machine
// knows.
type EntityType uint8

const (
	EntityType_null EntityType = iota

	EntityType_Arc
	EntityType_Attribute
	EntityType_AttributeDefinition
	EntityType_Circle
	EntityType_Dimension
	EntityType_Ellipse
	EntityType_Face3D
	EntityType_Hatch
	EntityType_Image
	EntityType_Insert
	EntityType_Leader
	EntityType_Line
	EntityType_LwPolyline
	EntityType_MLine
	EntityType_MText
	EntityType_Point
	EntityType_Solid
	EntityType_Text
	EntityType_Underlay
	EntityType_Viewport
	EntityType_Wipeout

	EntityType_count
)

var entityTypeStr = map[EntityType]string{
	EntityType_null:                "EntityType_null",
	EntityType_Arc:                 "EntityType_Arc",
	EntityType_Attribute:           "EntityType_Attribute",
	EntityType_AttributeDefinition: "EntityType_AttributeDefinition",
	EntityType_Circle:              "EntityType_Circle",
	EntityType_Dimension:           "EntityType_Dimension",
	EntityType_Ellipse:             "EntityType_Ellipse",
	EntityType_Face3D:              "EntityType_Face3D",
	EntityType_Hatch:               "EntityType_Hatch",
	EntityType_Image:               "EntityType_Image",
	EntityType_Insert:              "EntityType_Insert",
	EntityType_Leader:              "EntityType_Leader",
	EntityType_Line:                "EntityType_Line",
	EntityType_LwPolyline:          "EntityType_LwPolyline",
	EntityType_MLine:               "EntityType_MLine",
	EntityType_MText:               "EntityType_MText",
	EntityType_Point:               "EntityType_Point",
	EntityType_Solid:               "EntityType_Solid",
	EntityType_Text:                "EntityType_Text",
	EntityType_Underlay:            "EntityType_Underlay",
	EntityType_Viewport:            "EntityType_Viewport",
	EntityType_Wipeout:             "EntityType_Wipeout",
}

func (t EntityType) String() string {
	if s, ok := entityTypeStr[t]; ok {
		return s
	}
	return fmt.Sprintf("EntityType(%d)", uint8(t))
}

// Entity is a drawable item owned by exactly one block (its containing
// space). Every entity references a layer and a linetype; reassigning
// either while the entity is attached rebalances the table reference
// lists on the same call stack.
//
// Entity is sealed: only types of this package implement it.
type Entity interface {
	DxfObject

	Type() EntityType

	Layer() *Layer
	SetLayer(*Layer)
	Linetype() *Linetype
	SetLinetype(*Linetype)

	// Returns the extended data of the entity. Never nil.
	XData() XDataMap

	// Reactors are back references from entities that depend on this
	// one (a hatch on its contour, a viewport on its clipping
	// boundary). An entity with reactors refuses removal.
	Reactors() []DxfObject
	HasReactors() bool

	addReactor(dep DxfObject)
	delReactor(dep DxfObject)
	setLayerObserver(func(*Layer) *Layer)
	setLinetypeObserver(func(*Linetype) *Linetype)
	replaceLayer(*Layer)
	replaceLinetype(*Linetype)
}

// # Implements:
//   - Entity
type entityObject struct {
	dxfObject
	etype EntityType

	color         AciColor
	transparency  Transparency
	lineweight    Lineweight
	linetypeScale float64
	isVisible     bool
	normal        Vector3
	xData         XDataMap
	reactors      []DxfObject

	layer            *Layer
	linetype         *Linetype
	onLayerChange    func(*Layer) *Layer
	onLinetypeChange func(*Linetype) *Linetype
}

func makeEntityObject(etype EntityType, codeName string) entityObject {
	return entityObject{
		dxfObject:     dxfObject{codeName: codeName},
		etype:         etype,
		color:         ColorByLayer(),
		transparency:  TransparencyByLayer(),
		lineweight:    LineweightByLayer,
		linetypeScale: 1.0,
		isVisible:     true,
		normal:        UnitZ,
		xData:         make(XDataMap),
		layer:         NewLayer(DefaultLayerName),
		linetype:      NewLinetype(ByLayerLinetypeName),
	}
}

func (e *entityObject) Type() EntityType { return e.etype }

func (e *entityObject) Color() AciColor { return e.color }

func (e *entityObject) SetColor(c AciColor) { e.color = c }

func (e *entityObject) Transparency() Transparency { return e.transparency }

func (e *entityObject) SetTransparency(t Transparency) { e.transparency = t }

func (e *entityObject) Lineweight() Lineweight { return e.lineweight }

func (e *entityObject) SetLineweight(w Lineweight) { e.lineweight = w }

func (e *entityObject) LinetypeScale() float64 { return e.linetypeScale }

// SetLinetypeScale scales the linetype pattern of this entity.
//
// # Panics:
//   - if scale is not positive.
func (e *entityObject) SetLinetypeScale(scale float64) {
	if scale <= 0 {
		panic(ErrInvalid("linetype scale %f must be positive", scale))
	}
	e.linetypeScale = scale
}

func (e *entityObject) IsVisible() bool { return e.isVisible }

func (e *entityObject) SetVisible(v bool) { e.isVisible = v }

func (e *entityObject) Normal() Vector3 { return e.normal }

func (e *entityObject) SetNormal(n Vector3) { e.normal = n }

func (e *entityObject) XData() XDataMap { return e.xData }

func (e *entityObject) Layer() *Layer { return e.layer }

// SetLayer reassigns the entity layer. While the entity is attached,
// the document interns the new layer and rebalances both reference
// lists; the committed value is the canonical table instance.
//
// # Panics:
//   - if layer is nil (ErrMissedError).
func (e *entityObject) SetLayer(layer *Layer) {
	if layer == nil {
		panic(ErrMissed("entity layer"))
	}
	if e.onLayerChange != nil {
		layer = e.onLayerChange(layer)
	}
	e.layer = layer
}

func (e *entityObject) Linetype() *Linetype { return e.linetype }

// SetLinetype reassigns the entity linetype, same contract as SetLayer.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (e *entityObject) SetLinetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("entity linetype"))
	}
	if e.onLinetypeChange != nil {
		linetype = e.onLinetypeChange(linetype)
	}
	e.linetype = linetype
}

func (e *entityObject) Reactors() []DxfObject {
	out := make([]DxfObject, len(e.reactors))
	copy(out, e.reactors)
	return out
}

func (e *entityObject) HasReactors() bool { return len(e.reactors) > 0 }

func (e *entityObject) addReactor(dep DxfObject) {
	e.reactors = append(e.reactors, dep)
}

func (e *entityObject) delReactor(dep DxfObject) {
	for i, d := range e.reactors {
		if d == dep {
			e.reactors = append(e.reactors[:i], e.reactors[i+1:]...)
			return
		}
	}
}

// replaceLayer swaps the layer pointer without notifying the observer.
// Used by the document to substitute the canonical table instance.
func (e *entityObject) replaceLayer(l *Layer) { e.layer = l }

func (e *entityObject) replaceLinetype(lt *Linetype) { e.linetype = lt }

func (e *entityObject) setLayerObserver(f func(*Layer) *Layer) { e.onLayerChange = f }

func (e *entityObject) setLinetypeObserver(f func(*Linetype) *Linetype) { e.onLinetypeChange = f }
