// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package catalog

import (
	"fmt"

	"github.com/damus-io/flagbit"
)

// Allocator hands out flag identifiers in word-aligned groups, for programs
// that define their flag space in code rather than YAML.  Each group
// reserves one word; flags within a group get consecutive bit offsets.
// Misuse (too many flags in a group, duplicate names) is reported by
// Catalog, so identifier assignment itself stays a plain expression.
type Allocator struct {
	nextWord int
	groups   []*GroupBuilder
}

// NewAllocator returns an Allocator that assigns words starting at 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Group reserves the next word for a named group of flags.
func (a *Allocator) Group(name string) *GroupBuilder {
	g := &GroupBuilder{name: name, word: a.nextWord}
	a.nextWord++
	a.groups = append(a.groups, g)
	return g
}

// Catalog validates everything allocated so far and returns it as a
// Catalog, including any overflow a Flag call swallowed.
func (a *Allocator) Catalog() (*Catalog, error) {
	groups := make([]Group, len(a.groups))
	for i, g := range a.groups {
		if g.overflowed != "" {
			return nil, fmt.Errorf("group %q: flag %q does not fit in a %d-bit word", g.name, g.overflowed, flagbit.CanonicalWordBits)
		}
		groups[i] = Group{Name: g.name, Word: g.word, Flags: g.flags}
	}
	return New(groups)
}

// GroupBuilder assigns flag identifiers within one reserved word.
type GroupBuilder struct {
	name       string
	word       int
	flags      []string
	overflowed string
}

// Flag names the next bit in the group's word and returns its identifier.
// If the word is already full the name is recorded and reported as an error
// by Allocator.Catalog; the returned identifier is not usable.
func (g *GroupBuilder) Flag(name string) uint32 {
	if len(g.flags) == flagbit.CanonicalWordBits {
		if g.overflowed == "" {
			g.overflowed = name
		}
		return uint32(g.word * flagbit.CanonicalWordBits)
	}
	id := uint32(g.word*flagbit.CanonicalWordBits + len(g.flags))
	g.flags = append(g.flags, name)
	return id
}
