/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "math"

// DXF record type tags.
const (
	codeNameDocument = "DOCUMENT"
	codeNameTable    = "TABLE"

	codeNameAppReg      = "APPID"
	codeNameBlock       = "BLOCK"
	codeNameBlockRecord = "BLOCK_RECORD"
	codeNameDimStyle    = "DIMSTYLE"
	codeNameLayer       = "LAYER"
	codeNameLayout      = "LAYOUT"
	codeNameLinetype    = "LTYPE"
	codeNameMLineStyle  = "MLINESTYLE"
	codeNameTextStyle   = "STYLE"
	codeNameUcs         = "UCS"
	codeNameView        = "VIEW"
	codeNameVPort       = "VPORT"

	codeNameArc        = "ARC"
	codeNameAttDef     = "ATTDEF"
	codeNameAttrib     = "ATTRIB"
	codeNameCircle     = "CIRCLE"
	codeNameDimension  = "DIMENSION"
	codeNameEllipse    = "ELLIPSE"
	codeNameFace3D     = "3DFACE"
	codeNameHatch      = "HATCH"
	codeNameImage      = "IMAGE"
	codeNameInsert     = "INSERT"
	codeNameLeader     = "LEADER"
	codeNameLine       = "LINE"
	codeNameLwPolyline = "LWPOLYLINE"
	codeNameMLine      = "MLINE"
	codeNameMText      = "MTEXT"
	codeNamePoint      = "POINT"
	codeNameSolid      = "SOLID"
	codeNameText       = "TEXT"
	codeNameViewport   = "VIEWPORT"
	codeNameWipeout    = "WIPEOUT"

	codeNameUnderlayDgn = "DGNUNDERLAY"
	codeNameUnderlayDwf = "DWFUNDERLAY"
	codeNameUnderlayPdf = "PDFUNDERLAY"

	codeNameImageDef        = "IMAGEDEF"
	codeNameImageDefReactor = "IMAGEDEF_REACTOR"
	codeNameUnderlayDgnDef  = "DGNDEFINITION"
	codeNameUnderlayDwfDef  = "DWFDEFINITION"
	codeNameUnderlayPdfDef  = "PDFDEFINITION"
)

// Most resource tables are capped at the 16-bit signed maximum; block,
// layout and definition tables are effectively unbounded.
const (
	maxTableEntries     = math.MaxInt16
	maxUnboundedEntries = math.MaxInt32
)

// Default resources of a new document. All of them exist, reserved,
// immediately after construction.
const (
	DefaultLayerName      = "0"
	DefaultTextStyleName  = "Standard"
	DefaultDimStyleName   = "Standard"
	DefaultMLineStyleName = "Standard"
	DefaultAppRegName     = "ACAD"
	DefaultLayoutName     = "Model"
	DefaultVPortName      = "*Active"

	ByLayerLinetypeName    = "ByLayer"
	ByBlockLinetypeName    = "ByBlock"
	ContinuousLinetypeName = "Continuous"

	ModelSpaceBlockName = "*Model_Space"
	PaperSpaceBlockName = "*Paper_Space"
)
