// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package flagbit packs large numbers of independent boolean flags into a
// flat array of fixed-width words.  A single integer identifier encodes both
// the word's position in the array (high bits) and the bit's position within
// that word (low bits), so callers address flags purely by symbolic constant
// and the storage stays a contiguous, trivially serializable slice.
//
// The canonical layout uses 16-bit words: the upper 12 bits of an identifier
// select one of up to 4096 words and the lower 4 bits select a bit, covering
// identifiers 0x0000 through 0xFFFF.  That split is a save-format convention,
// not a requirement: the codec is generic over word width and places no limit
// on slice length beyond what the caller allocates.
package flagbit

import "math/bits"

// Word is any unsigned integer type usable as flag storage.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Canonical layout constants for the 16-bit-word encoding.
const (
	CanonicalWordBits  = 16
	CanonicalWordCount = 4096
	MaxCanonicalID     = 0xFFFF
)

// wordBits returns the width of W in bits (8, 16, 32 or 64).
func wordBits[W Word]() uint {
	return uint(bits.Len64(uint64(^W(0))))
}

// Locate splits a flag identifier into the index of its word and the offset
// of its bit within that word.  It is a pure function of the identifier:
// every identifier maps to a location, whether or not the caller's storage
// extends that far.
func Locate[W Word](id uint32) (wordIndex int, bitOffset uint) {
	w := wordBits[W]()
	wordIndex = int(id >> bits.TrailingZeros(w))
	bitOffset = uint(id) & (w - 1)
	return
}

// Mask returns a word with exactly one bit set, at the bit offset the
// identifier selects.
func Mask[W Word](id uint32) W {
	_, bitOffset := Locate[W](id)
	return W(1) << bitOffset
}

// Test reports whether the flag is set.  It never mutates words.
func Test[W Word](words []W, id uint32) (bool, error) {
	wordIndex, _ := Locate[W](id)
	if wordIndex >= len(words) {
		return false, &OutOfRangeError{ID: id, WordIndex: wordIndex, Words: len(words)}
	}
	return words[wordIndex]&Mask[W](id) != 0, nil
}

// Set raises the flag.  Setting an already-set flag is a no-op.
func Set[W Word](words []W, id uint32) error {
	wordIndex, _ := Locate[W](id)
	if wordIndex >= len(words) {
		return &OutOfRangeError{ID: id, WordIndex: wordIndex, Words: len(words)}
	}
	words[wordIndex] |= Mask[W](id)
	return nil
}

// Clear lowers the flag.  Clearing an already-clear flag is a no-op.
func Clear[W Word](words []W, id uint32) error {
	wordIndex, _ := Locate[W](id)
	if wordIndex >= len(words) {
		return &OutOfRangeError{ID: id, WordIndex: wordIndex, Words: len(words)}
	}
	words[wordIndex] &^= Mask[W](id)
	return nil
}
