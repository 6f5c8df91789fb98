/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package observe

import "errors"

var ErrRejected = errors.New("rejected by collection policy")

var ErrObserved = errors.New("already observed")

var ErrOutOfBounds = errors.New("out of bounds")

var ErrAlreadyExists = errors.New("already exists")
