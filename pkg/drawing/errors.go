/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package drawing

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

var ErrMissedError = errors.New("missed")

func ErrMissed(msg string, args ...any) error {
	return enrichError(ErrMissedError, msg, args...)
}

var ErrInvalidError = errors.New("not valid")

func ErrInvalid(msg string, args ...any) error {
	return enrichError(ErrInvalidError, msg, args...)
}

var ErrAlreadyExistsError = errors.New("already exists")

func ErrAlreadyExists(msg string, args ...any) error {
	return enrichError(ErrAlreadyExistsError, msg, args...)
}

var ErrNotFoundError = errors.New("not found")

func ErrNotFound(msg string, args ...any) error {
	return enrichError(ErrNotFoundError, msg, args...)
}

var ErrTooManyError = errors.New("too many")

func ErrTooMany(msg string, args ...any) error {
	return enrichError(ErrTooManyError, msg, args...)
}

var ErrUnsupportedError = errors.New("unsupported")

func ErrUnsupported(msg string, args ...any) error {
	return enrichError(ErrUnsupportedError, msg, args...)
}

var ErrReservedError = errors.New("reserved")

func ErrReserved(msg string, args ...any) error {
	return enrichError(ErrReservedError, msg, args...)
}
