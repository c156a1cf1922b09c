// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagbit

import (
	"errors"
	"fmt"
)

// ErrOutOfRange matches any *OutOfRangeError via errors.Is.
var ErrOutOfRange = errors.New("flag identifier out of range")

// OutOfRangeError reports a flag identifier whose word index falls outside
// the caller-provided storage.  The codec reports this rather than indexing
// past the slice; it is the caller's decision whether that is fatal.
type OutOfRangeError struct {
	ID        uint32
	WordIndex int
	Words     int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("flag 0x%X: word index %d beyond storage (%d words)", e.ID, e.WordIndex, e.Words)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
