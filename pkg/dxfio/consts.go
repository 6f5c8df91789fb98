/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package dxfio

// Section names.
const (
	sectionHeader   = "HEADER"
	sectionClasses  = "CLASSES"
	sectionTables   = "TABLES"
	sectionBlocks   = "BLOCKS"
	sectionEntities = "ENTITIES"
	sectionObjects  = "OBJECTS"
)

// Header variables.
const (
	headerAcadVer  = "$ACADVER"
	headerHandSeed = "$HANDSEED"
	headerCodepage = "$DWGCODEPAGE"
)

// Drawing database versions.
const (
	// VersionFloor is the oldest database version the loader accepts
	// (AutoCAD 2000).
	VersionFloor = "AC1015"
	// VersionSaved is the database version the writer declares
	// (AutoCAD 2007).
	VersionSaved = "AC1021"
)

// DefaultCodepage is declared by the writer for text streams.
const DefaultCodepage = "ANSI_1252"
