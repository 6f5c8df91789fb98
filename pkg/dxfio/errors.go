/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package dxfio

import (
	"errors"
	"fmt"
)

func enrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

// ErrUnsupportedVersionError reports a drawing database version below
// the loader floor.
var ErrUnsupportedVersionError = errors.New("unsupported drawing version")

func ErrUnsupportedVersion(msg string, args ...any) error {
	return enrichError(ErrUnsupportedVersionError, msg, args...)
}

// ErrFormatError reports a stream that is not a well-formed drawing.
var ErrFormatError = errors.New("malformed drawing")

func ErrFormat(msg string, args ...any) error {
	return enrichError(ErrFormatError, msg, args...)
}
