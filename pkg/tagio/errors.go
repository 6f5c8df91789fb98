/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

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

// ErrMalformedError reports a stream that violates the two-line record
// or binary record layout.
var ErrMalformedError = errors.New("malformed tag stream")

func ErrMalformed(msg string, args ...any) error {
	return enrichError(ErrMalformedError, msg, args...)
}

// ErrCodepageError reports an unknown $DWGCODEPAGE value.
var ErrCodepageError = errors.New("unknown codepage")

func ErrCodepage(msg string, args ...any) error {
	return enrichError(ErrCodepageError, msg, args...)
}
