// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagbit

import (
	"fmt"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// Raised returns the identifiers of every set flag in a canonical 16-bit
// word array, as a roaring bitmap.
func Raised(words []uint16) *roaring.Bitmap {
	out := roaring.New()
	for i, w := range words {
		for w != 0 {
			off := bits.TrailingZeros16(w)
			out.Add(uint32(i*CanonicalWordBits + off))
			w &= w - 1
		}
	}
	return out
}

// Diff compares two canonical word arrays of equal length and returns the
// identifiers of flags raised in next but not prev, and of flags cleared in
// next that were raised in prev.
func Diff(prev, next []uint16) (raised, cleared *roaring.Bitmap, err error) {
	if len(prev) != len(next) {
		return nil, nil, fmt.Errorf("word count mismatch: %d != %d", len(prev), len(next))
	}
	before := Raised(prev)
	after := Raised(next)
	raised = roaring.AndNot(after, before)
	cleared = roaring.AndNot(before, after)
	return raised, cleared, nil
}
