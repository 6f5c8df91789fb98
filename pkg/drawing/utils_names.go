/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

import "strings"

// Characters forbidden in table object names.
const invalidNameChars = "\\<>/?\":;*|,=`"

// Returns has name valid table object symbols and error if not.
//
// Names starting with «*» are legal: anonymous and space blocks
// («*Model_Space», «*Paper_Space», «*D1», …) use them.
func ValidTableName(name string) (bool, error) {
	if name == "" {
		return false, ErrMissed("table object name")
	}
	if strings.ContainsAny(strings.TrimPrefix(name, "*"), invalidNameChars) {
		return false, ErrInvalid("table object name «%s» contains one of «%s»", name, invalidNameChars)
	}
	return true, nil
}

// Table object names are case-insensitive: «Standard» and «STANDARD»
// address the same entry. nameKey folds a name to its map key.
func nameKey(name string) string {
	return strings.ToLower(name)
}
