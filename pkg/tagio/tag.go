/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is one DXF record: a group code and its value. The value type is
// dictated by the group code, see Kind.
type Tag struct {
	Code  int
	Value any
}

func NewTag(code int, value any) Tag {
	return Tag{Code: code, Value: value}
}

// AsString returns the value as a string. Numeric values are formatted,
// string values are returned verbatim including leading spaces.
func (t Tag) AsString() string {
	switch v := t.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case nil:
		return ""
	}
	return fmt.Sprint(t.Value)
}

// AsInt returns the value as an int, zero if it does not parse.
func (t Tag) AsInt() int {
	switch v := t.Value.(type) {
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	}
	return 0
}

// AsInt64 returns the value as an int64, zero if it does not parse.
func (t Tag) AsInt64() int64 {
	if v, ok := t.Value.(int64); ok {
		return v
	}
	if v, ok := t.Value.(string); ok {
		i, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i
	}
	return int64(t.AsInt())
}

// AsFloat returns the value as a float64, zero if it does not parse.
func (t Tag) AsFloat() float64 {
	switch v := t.Value.(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return float64(t.AsInt())
}

// AsBool returns the value as a bool; any non-zero numeric is true.
func (t Tag) AsBool() bool {
	if v, ok := t.Value.(bool); ok {
		return v
	}
	return t.AsInt() != 0
}

// AsHandle returns the value parsed as an uppercase hex handle, zero if
// it does not parse.
func (t Tag) AsHandle() int64 {
	if v, ok := t.Value.(string); ok {
		h, _ := strconv.ParseInt(strings.TrimSpace(v), 16, 64)
		return h
	}
	return 0
}

func (t Tag) String() string {
	return fmt.Sprintf("(%d, «%s»)", t.Code, t.AsString())
}

// Kind is the wire type of a tag value.
type Kind uint8

const (
	KindString Kind = iota
	KindDouble
	KindInt16
	KindInt32
	KindInt64
	KindBool
	// KindChunk is a binary chunk: hex-encoded in text streams, length
	// prefixed in binary streams.
	KindChunk
)

// KindOf maps a group code to its value kind per the DXF reference.
func KindOf(code int) Kind {
	switch {
	case code >= 10 && code <= 59:
		return KindDouble
	case code >= 60 && code <= 79:
		return KindInt16
	case code >= 90 && code <= 99:
		return KindInt32
	case code >= 110 && code <= 149:
		return KindDouble
	case code >= 160 && code <= 169:
		return KindInt64
	case code >= 170 && code <= 179:
		return KindInt16
	case code >= 210 && code <= 239:
		return KindDouble
	case code >= 270 && code <= 289:
		return KindInt16
	case code >= 290 && code <= 299:
		return KindBool
	case code >= 310 && code <= 319:
		return KindChunk
	case code >= 370 && code <= 389:
		return KindInt16
	case code >= 400 && code <= 409:
		return KindInt16
	case code >= 420 && code <= 429:
		return KindInt32
	case code >= 440 && code <= 459:
		return KindInt32
	case code >= 460 && code <= 469:
		return KindDouble
	case code >= 1010 && code <= 1059:
		return KindDouble
	case code >= 1060 && code <= 1070:
		return KindInt16
	case code == 1071:
		return KindInt32
	}
	return KindString
}
