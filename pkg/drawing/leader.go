/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// Leader is an arrowed pointer line rendered through a dimension
// style, optionally ending at an annotation entity (text, multiline
// text or block insert). The annotation is attached together with the
// leader and records the leader as its reactor.
//
// # Implements:
//   - Entity
type Leader struct {
	entityObject

	Vertexes []Vector2
	HasArrow bool

	style         *DimensionStyle
	onStyleChange func(*DimensionStyle) *DimensionStyle

	annotation Entity
}

// NewLeader builds a leader along vertexes.
//
// # Panics:
//   - if fewer than two vertexes are given (ErrInvalidError).
func NewLeader(vertexes ...Vector2) *Leader {
	if len(vertexes) < 2 {
		panic(ErrInvalid("leader needs at least two vertexes, got %d", len(vertexes)))
	}
	return &Leader{
		entityObject: makeEntityObject(EntityType_Leader, codeNameLeader),
		Vertexes:     vertexes,
		HasArrow:     true,
		style:        NewDimensionStyle(DefaultDimStyleName),
	}
}

func (l *Leader) Style() *DimensionStyle { return l.style }

// SetStyle reassigns the dimension style, same reference contract as
// Entity.SetLayer.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (l *Leader) SetStyle(style *DimensionStyle) {
	if style == nil {
		panic(ErrMissed("leader style"))
	}
	if l.onStyleChange != nil {
		style = l.onStyleChange(style)
	}
	l.style = style
}

func (l *Leader) setStyleObserver(f func(*DimensionStyle) *DimensionStyle) { l.onStyleChange = f }

// Annotation returns the annotation entity, nil for a bare leader.
func (l *Leader) Annotation() Entity { return l.annotation }

// SetAnnotation assigns the annotation entity. Only legal while the
// leader is detached; the attach state machine adopts the annotation.
//
// # Panics:
//   - if the leader is attached (ErrInvalidError),
//   - if annotation is owned elsewhere (ErrInvalidError).
func (l *Leader) SetAnnotation(annotation Entity) {
	if l.Owner() != nil {
		panic(ErrInvalid("cannot replace the annotation of an attached leader"))
	}
	if (annotation != nil) && (annotation.Owner() != nil) {
		panic(ErrInvalid("leader annotation already belongs to a block"))
	}
	l.annotation = annotation
}
