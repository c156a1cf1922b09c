// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package catalog maps symbolic flag names to identifiers assigned in
// word-aligned groups.  The classic form of this is a hand-maintained
// enumeration with deliberate hexadecimal gaps (0x00-0x07 for one feature,
// 0x10-0x1A for the next); a catalog makes that convention data, either
// loaded from YAML or built programmatically with an Allocator.  It layers
// on top of the codec and the codec has no dependency on it.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/damus-io/flagbit"
)

// Group names one word's worth of flags.  Flags get consecutive bit
// offsets starting at 0; unused offsets in the word stay unnamed.
type Group struct {
	Name  string   `yaml:"name"`
	Word  int      `yaml:"word"`
	Flags []string `yaml:"flags"`
}

// Catalog resolves flag names to identifiers and back.
type Catalog struct {
	Groups []Group `yaml:"groups"`

	byName map[string]uint32
	byID   map[uint32]string
}

// New builds a Catalog from groups, validating them.
func New(groups []Group) (*Catalog, error) {
	c := &Catalog{Groups: groups}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

// Load reads a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the catalog:
// - at least one group, every group named with a valid word index
// - no two groups share a name or a word
// - at most one word's worth of flags per group, no duplicate flag names
func (c *Catalog) Validate() error {
	if len(c.Groups) == 0 {
		return errors.New("catalog has no groups")
	}

	groupNames := make(map[string]bool, len(c.Groups))
	words := make(map[int]string, len(c.Groups))
	flagNames := make(map[string]string)

	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group at word %d has no name", g.Word)
		}
		if groupNames[g.Name] {
			return fmt.Errorf("duplicate group name %q", g.Name)
		}
		groupNames[g.Name] = true

		if g.Word < 0 || g.Word >= flagbit.CanonicalWordCount {
			return fmt.Errorf("group %q: word %d outside [0, %d)", g.Name, g.Word, flagbit.CanonicalWordCount)
		}
		if other, taken := words[g.Word]; taken {
			return fmt.Errorf("group %q: word %d already used by group %q", g.Name, g.Word, other)
		}
		words[g.Word] = g.Name

		if len(g.Flags) > flagbit.CanonicalWordBits {
			return fmt.Errorf("group %q: %d flags don't fit in a %d-bit word", g.Name, len(g.Flags), flagbit.CanonicalWordBits)
		}
		for _, name := range g.Flags {
			if name == "" {
				return fmt.Errorf("group %q has an empty flag name", g.Name)
			}
			if other, dup := flagNames[name]; dup {
				return fmt.Errorf("flag %q defined in both group %q and group %q", name, other, g.Name)
			}
			flagNames[name] = g.Name
		}
	}

	return nil
}

func (c *Catalog) index() {
	c.byName = make(map[string]uint32)
	c.byID = make(map[uint32]string)
	for _, g := range c.Groups {
		for i, name := range g.Flags {
			id := uint32(g.Word*flagbit.CanonicalWordBits + i)
			c.byName[name] = id
			c.byID[id] = name
		}
	}
}

// ID returns the identifier for a flag name.
func (c *Catalog) ID(name string) (uint32, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Name returns the flag name for an identifier, if one is defined.
func (c *Catalog) Name(id uint32) (string, bool) {
	name, ok := c.byID[id]
	return name, ok
}

// Names returns all defined flag names, ordered by identifier.
func (c *Catalog) Names() []string {
	ids := make([]uint32, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.byID[id]
	}
	return names
}
