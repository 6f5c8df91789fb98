/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// DimensionStyle is a composite resource: beside its numeric variables
// it references a text style, up to three arrowhead blocks and three
// linetypes. Registering a style interns all of them; reassigning one
// goes through the same observer idiom as entity layers.
//
// # Implements:
//   - TableObject
type DimensionStyle struct {
	tableObject

	// DIMSCALE, global scale applied to all style distances.
	Scale float64
	// DIMEXE, extension line distance beyond the dimension line.
	ExtLineExtend float64
	// DIMEXO, extension line offset from the origin points.
	ExtLineOffset float64
	// DIMGAP, gap between the dimension line and the text.
	TextGap float64
	// DIMTXT, text height.
	TextHeight float64
	// DIMASZ, arrowhead size.
	ArrowSize float64
	// DIMDEC, displayed decimal places.
	LengthPrecision int

	textStyle *TextStyle

	// nil arrowhead renders the built-in closed filled arrow
	dimArrow1   *Block
	dimArrow2   *Block
	leaderArrow *Block

	dimLineLinetype  *Linetype
	extLine1Linetype *Linetype
	extLine2Linetype *Linetype

	onTextStyleChange        func(*TextStyle) *TextStyle
	onDimArrow1Change        func(*Block) *Block
	onDimArrow2Change        func(*Block) *Block
	onLeaderArrowChange      func(*Block) *Block
	onDimLineLinetypeChange  func(*Linetype) *Linetype
	onExtLine1LinetypeChange func(*Linetype) *Linetype
	onExtLine2LinetypeChange func(*Linetype) *Linetype
}

// NewDimensionStyle builds a detached style with the stock variable
// values.
//
// # Panics:
//   - if name is empty or malformed.
func NewDimensionStyle(name string) *DimensionStyle {
	return &DimensionStyle{
		tableObject:      makeTableObject(name, codeNameDimStyle),
		Scale:            1.0,
		ExtLineExtend:    0.18,
		ExtLineOffset:    0.0625,
		TextGap:          0.09,
		TextHeight:       0.18,
		ArrowSize:        0.18,
		LengthPrecision:  4,
		textStyle:        NewTextStyle(DefaultTextStyleName, "simplex.shx"),
		dimLineLinetype:  NewLinetype(ByBlockLinetypeName),
		extLine1Linetype: NewLinetype(ByBlockLinetypeName),
		extLine2Linetype: NewLinetype(ByBlockLinetypeName),
	}
}

func (s *DimensionStyle) TextStyle() *TextStyle { return s.textStyle }

// SetTextStyle reassigns the DIMTXSTY text style.
//
// # Panics:
//   - if style is nil (ErrMissedError).
func (s *DimensionStyle) SetTextStyle(style *TextStyle) {
	if style == nil {
		panic(ErrMissed("dimension style «%s» text style", s.Name()))
	}
	if s.onTextStyleChange != nil {
		style = s.onTextStyleChange(style)
	}
	s.textStyle = style
}

func (s *DimensionStyle) DimArrow1() *Block { return s.dimArrow1 }

// SetDimArrow1 reassigns the first arrowhead block; nil selects the
// built-in arrow.
func (s *DimensionStyle) SetDimArrow1(block *Block) {
	if s.onDimArrow1Change != nil {
		block = s.onDimArrow1Change(block)
	}
	s.dimArrow1 = block
}

func (s *DimensionStyle) DimArrow2() *Block { return s.dimArrow2 }

// SetDimArrow2 reassigns the second arrowhead block; nil selects the
// built-in arrow.
func (s *DimensionStyle) SetDimArrow2(block *Block) {
	if s.onDimArrow2Change != nil {
		block = s.onDimArrow2Change(block)
	}
	s.dimArrow2 = block
}

func (s *DimensionStyle) LeaderArrow() *Block { return s.leaderArrow }

// SetLeaderArrow reassigns the leader arrowhead block; nil selects the
// built-in arrow.
func (s *DimensionStyle) SetLeaderArrow(block *Block) {
	if s.onLeaderArrowChange != nil {
		block = s.onLeaderArrowChange(block)
	}
	s.leaderArrow = block
}

func (s *DimensionStyle) DimLineLinetype() *Linetype { return s.dimLineLinetype }

// SetDimLineLinetype reassigns the dimension line linetype.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (s *DimensionStyle) SetDimLineLinetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("dimension style «%s» dimension line linetype", s.Name()))
	}
	if s.onDimLineLinetypeChange != nil {
		linetype = s.onDimLineLinetypeChange(linetype)
	}
	s.dimLineLinetype = linetype
}

func (s *DimensionStyle) ExtLine1Linetype() *Linetype { return s.extLine1Linetype }

// SetExtLine1Linetype reassigns the first extension line linetype.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (s *DimensionStyle) SetExtLine1Linetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("dimension style «%s» extension line 1 linetype", s.Name()))
	}
	if s.onExtLine1LinetypeChange != nil {
		linetype = s.onExtLine1LinetypeChange(linetype)
	}
	s.extLine1Linetype = linetype
}

func (s *DimensionStyle) ExtLine2Linetype() *Linetype { return s.extLine2Linetype }

// SetExtLine2Linetype reassigns the second extension line linetype.
//
// # Panics:
//   - if linetype is nil (ErrMissedError).
func (s *DimensionStyle) SetExtLine2Linetype(linetype *Linetype) {
	if linetype == nil {
		panic(ErrMissed("dimension style «%s» extension line 2 linetype", s.Name()))
	}
	if s.onExtLine2LinetypeChange != nil {
		linetype = s.onExtLine2LinetypeChange(linetype)
	}
	s.extLine2Linetype = linetype
}
