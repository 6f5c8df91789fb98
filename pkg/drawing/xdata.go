/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

// XDataRecord is one extended data tag: a group code in the 1000…1071
// range and its value.
type XDataRecord struct {
	Code  int
	Value any
}

// XData is the extended data attached to an object on behalf of one
// application registry.
type XData struct {
	Registry *ApplicationRegistry
	Records  []XDataRecord
}

// XDataMap keys the extended data of an object by application registry
// name. Registration interns every registry into the document table, so
// after an object is added the Registry pointers are the canonical
// table instances.
type XDataMap map[string]*XData

// Add stores x under its registry name, replacing a previous entry of
// the same registry.
//
// # Panics:
//   - if x or its registry is nil.
func (m XDataMap) Add(x *XData) {
	if (x == nil) || (x.Registry == nil) {
		panic(ErrMissed("extended data registry"))
	}
	m[nameKey(x.Registry.Name())] = x
}

func (m XDataMap) Item(appReg string) (*XData, bool) {
	x, ok := m[nameKey(appReg)]
	return x, ok
}

func (m XDataMap) Remove(appReg string) bool {
	key := nameKey(appReg)
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}
