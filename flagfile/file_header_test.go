// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHeader_RoundTrip(t *testing.T) {
	origH := newFileHeader(codecZstd, 4096, 0xDEADBEEFCAFEF00D)
	require.Equal(t, uint32(magicFlagHeader), origH.magic)
	require.Equal(t, uint32(fileFormatVersion), origH.formatVersion)
	require.Equal(t, uint16(16), origH.wordBits)

	// this should be an error
	err := origH.MarshalTo(nil)
	assert.Error(t, err)

	var newH fileHeader
	headerBytes := make([]byte, fileHeaderSize)
	// this should be an error -- missing magic number
	err = newH.UnmarshalBytes(headerBytes)
	assert.Error(t, err)

	err = origH.MarshalTo(headerBytes)
	require.NoError(t, err)

	// this should be an error
	err = newH.UnmarshalBytes(nil)
	assert.Error(t, err)

	err = newH.UnmarshalBytes(headerBytes)
	require.NoError(t, err)

	assert.Equal(t, origH, &newH)
}

func TestFileHeader_RejectsBadFields(t *testing.T) {
	headerBytes := make([]byte, fileHeaderSize)
	var h fileHeader

	// unknown format version
	bad := newFileHeader(codecRaw, 1, 0)
	bad.formatVersion = 666
	require.NoError(t, bad.MarshalTo(headerBytes))
	assert.Error(t, h.UnmarshalBytes(headerBytes))

	// unsupported word width
	bad = newFileHeader(codecRaw, 1, 0)
	bad.wordBits = 32
	require.NoError(t, bad.MarshalTo(headerBytes))
	assert.Error(t, h.UnmarshalBytes(headerBytes))

	// unknown codec
	bad = newFileHeader(codecRaw, 1, 0)
	bad.codec = 7
	require.NoError(t, bad.MarshalTo(headerBytes))
	assert.Error(t, h.UnmarshalBytes(headerBytes))
}
