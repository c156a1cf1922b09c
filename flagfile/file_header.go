// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagfile

import (
	"encoding/binary"
	"fmt"

	"github.com/damus-io/flagbit"
)

const (
	magicFlagHeader   = 0x74696246 // "Fbit", little-endian
	fileFormatVersion = 1

	fileHeaderSize = 24

	codecRaw  = 0
	codecZstd = 1
)

type fileHeader struct {
	magic         uint32
	formatVersion uint32
	wordBits      uint16
	codec         uint16
	wordCount     uint32
	checksum      uint64
}

func newFileHeader(codec uint16, wordCount int, checksum uint64) *fileHeader {
	return &fileHeader{
		magic:         magicFlagHeader,
		formatVersion: fileFormatVersion,
		wordBits:      flagbit.CanonicalWordBits,
		codec:         codec,
		wordCount:     uint32(wordCount),
		checksum:      checksum,
	}
}

func (h *fileHeader) MarshalTo(headerBytes []byte) error {
	if len(headerBytes) < fileHeaderSize {
		return fmt.Errorf("headerBytes too short: %d < %d", len(headerBytes), fileHeaderSize)
	}

	binary.LittleEndian.PutUint32(headerBytes[0:4], h.magic)
	binary.LittleEndian.PutUint32(headerBytes[4:8], h.formatVersion)
	binary.LittleEndian.PutUint16(headerBytes[8:10], h.wordBits)
	binary.LittleEndian.PutUint16(headerBytes[10:12], h.codec)
	binary.LittleEndian.PutUint32(headerBytes[12:16], h.wordCount)
	binary.LittleEndian.PutUint64(headerBytes[16:24], h.checksum)

	return nil
}

func (h *fileHeader) UnmarshalBytes(headerBytes []byte) error {
	if len(headerBytes) < fileHeaderSize {
		return fmt.Errorf("headerBytes too short: %d < %d", len(headerBytes), fileHeaderSize)
	}

	headerBytes = headerBytes[:fileHeaderSize]

	h.magic = binary.LittleEndian.Uint32(headerBytes[0:4])
	if h.magic != magicFlagHeader {
		return fmt.Errorf("bad magic number (%x) -- not a flag file or corrupted", h.magic)
	}

	h.formatVersion = binary.LittleEndian.Uint32(headerBytes[4:8])
	if h.formatVersion != fileFormatVersion {
		return fmt.Errorf("this version of the flagbit library can only read v%d flag files; found v%d", fileFormatVersion, h.formatVersion)
	}

	h.wordBits = binary.LittleEndian.Uint16(headerBytes[8:10])
	if h.wordBits != flagbit.CanonicalWordBits {
		return fmt.Errorf("unsupported word width %d (only %d-bit words are persisted)", h.wordBits, flagbit.CanonicalWordBits)
	}

	h.codec = binary.LittleEndian.Uint16(headerBytes[10:12])
	if h.codec != codecRaw && h.codec != codecZstd {
		return fmt.Errorf("unknown payload codec %d", h.codec)
	}

	h.wordCount = binary.LittleEndian.Uint32(headerBytes[12:16])
	h.checksum = binary.LittleEndian.Uint64(headerBytes[16:24])

	return nil
}
