// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
groups:
  - name: npc
    word: 0
    flags:
      - talked_to_blacksmith
      - talked_to_innkeeper
  - name: dungeon
    word: 1
    flags:
      - found_map
      - found_compass
      - boss_defeated
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	id, ok := c.ID("talked_to_blacksmith")
	require.True(t, ok)
	assert.Equal(t, uint32(0x00), id)

	id, ok = c.ID("boss_defeated")
	require.True(t, ok)
	assert.Equal(t, uint32(0x12), id)

	_, ok = c.ID("no_such_flag")
	assert.False(t, ok)

	name, ok := c.Name(0x10)
	require.True(t, ok)
	assert.Equal(t, "found_map", name)

	// offsets with no name stay unnamed
	_, ok = c.Name(0x0F)
	assert.False(t, ok)

	assert.Equal(t, []string{
		"talked_to_blacksmith",
		"talked_to_innkeeper",
		"found_map",
		"found_compass",
		"boss_defeated",
	}, c.Names())
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`
groups:
  - name: npc
    word: 0
    bits: [oops]
`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() []Group {
		return []Group{
			{Name: "npc", Word: 0, Flags: []string{"a", "b"}},
			{Name: "dungeon", Word: 1, Flags: []string{"c"}},
		}
	}

	_, err := New(valid())
	require.NoError(t, err)

	_, err = New(nil)
	assert.ErrorContains(t, err, "no groups")

	g := valid()
	g[1].Name = ""
	_, err = New(g)
	assert.ErrorContains(t, err, "no name")

	g = valid()
	g[1].Name = "npc"
	_, err = New(g)
	assert.ErrorContains(t, err, "duplicate group")

	g = valid()
	g[1].Word = 0
	_, err = New(g)
	assert.ErrorContains(t, err, "already used")

	g = valid()
	g[1].Word = -1
	_, err = New(g)
	assert.ErrorContains(t, err, "outside")

	g = valid()
	g[1].Word = 4096
	_, err = New(g)
	assert.ErrorContains(t, err, "outside")

	g = valid()
	g[1].Flags = []string{"c", "a"}
	_, err = New(g)
	assert.ErrorContains(t, err, "defined in both")

	g = valid()
	g[1].Flags = make([]string, 17)
	for i := range g[1].Flags {
		g[1].Flags[i] = strings.Repeat("x", i+1)
	}
	_, err = New(g)
	assert.ErrorContains(t, err, "don't fit")

	g = valid()
	g[1].Flags = []string{""}
	_, err = New(g)
	assert.ErrorContains(t, err, "empty flag name")
}

func TestAllocator(t *testing.T) {
	alloc := NewAllocator()

	npc := alloc.Group("npc")
	blacksmith := npc.Flag("talked_to_blacksmith")
	innkeeper := npc.Flag("talked_to_innkeeper")

	dungeon := alloc.Group("dungeon")
	bossDefeated := dungeon.Flag("boss_defeated")

	assert.Equal(t, uint32(0x00), blacksmith)
	assert.Equal(t, uint32(0x01), innkeeper)
	assert.Equal(t, uint32(0x10), bossDefeated)

	c, err := alloc.Catalog()
	require.NoError(t, err)

	name, ok := c.Name(bossDefeated)
	require.True(t, ok)
	assert.Equal(t, "boss_defeated", name)
	id, ok := c.ID("talked_to_innkeeper")
	require.True(t, ok)
	assert.Equal(t, innkeeper, id)
}

func TestAllocator_Overflow(t *testing.T) {
	alloc := NewAllocator()
	g := alloc.Group("crowded")
	for i := 0; i < 16; i++ {
		g.Flag(strings.Repeat("f", i+1))
	}
	g.Flag("seventeenth")

	_, err := alloc.Catalog()
	require.Error(t, err)
	assert.ErrorContains(t, err, "seventeenth")
}
