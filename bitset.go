// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagbit

// Bitset is an owning flag store, conceptually similar to []bool but more
// memory efficient.  It is a thin wrapper over the package-level codec
// functions that handles allocation for callers that don't already own the
// word array.  Like the rest of the package it does no locking; concurrent
// mutation is the caller's problem.
type Bitset[W Word] struct {
	words []W
}

// New returns a Bitset with capacity for at least numFlags flags, all clear.
func New[W Word](numFlags int) *Bitset[W] {
	w := int(wordBits[W]())
	return &Bitset[W]{
		words: make([]W, (numFlags+w-1)/w),
	}
}

// NewCanonical returns a Bitset in the canonical save layout: 4096 16-bit
// words, addressing identifiers 0x0000 through 0xFFFF.
func NewCanonical() *Bitset[uint16] {
	return &Bitset[uint16]{
		words: make([]uint16, CanonicalWordCount),
	}
}

// FromWords wraps caller-owned storage without copying.  Mutations through
// the Bitset are visible in words and vice versa, so a Bitset can address
// flag storage embedded in a larger save-state structure.
func FromWords[W Word](words []W) *Bitset[W] {
	return &Bitset[W]{words: words}
}

// Test reports whether the flag is set.
func (b *Bitset[W]) Test(id uint32) (bool, error) {
	return Test(b.words, id)
}

// Set raises the flag.
func (b *Bitset[W]) Set(id uint32) error {
	return Set(b.words, id)
}

// Clear lowers the flag.
func (b *Bitset[W]) Clear(id uint32) error {
	return Clear(b.words, id)
}

// Words returns the underlying storage, for serialization.  The slice is
// not a copy.
func (b *Bitset[W]) Words() []W {
	return b.words
}

// Len returns the number of addressable flags.
func (b *Bitset[W]) Len() int {
	return len(b.words) * int(wordBits[W]())
}
