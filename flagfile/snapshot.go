// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package flagfile

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dgryski/go-farm"
	"golang.org/x/sys/unix"

	"github.com/damus-io/flagbit"
)

// Snapshot is a read-only view of a raw (uncompressed) flag file backed by
// a memory mapping, for inspecting saves without decoding the whole word
// array.  Access patterns are point lookups, so the mapping is advised
// MADV_RANDOM.  Make sure to `defer s.Close()`.
type Snapshot struct {
	h    fileHeader
	data []byte
}

// OpenSnapshot maps the flag file at path.  The payload checksum is
// verified once at open; Test reads words straight from the mapping after
// that.  Zstd-compressed files can't be mapped -- use Load for those.
func OpenSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Size() < fileHeaderSize {
		return nil, fmt.Errorf("flag file too short: %d < %d", st.Size(), fileHeaderSize)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if err := unix.Madvise(data, unix.MADV_RANDOM); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}

	var h fileHeader
	if err := h.UnmarshalBytes(data); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("fileHeader.UnmarshalBytes: %w", err)
	}
	if h.codec != codecRaw {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("%s is compressed; snapshots only map raw flag files (use Load)", path)
	}
	if int64(fileHeaderSize+2*int(h.wordCount)) > st.Size() {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("flag file truncated: %d words don't fit in %d bytes", h.wordCount, st.Size())
	}

	payload := data[fileHeaderSize : fileHeaderSize+2*int(h.wordCount)]
	if checksum := farm.Hash64(payload); checksum != h.checksum {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("checksum failed (%x != %x): flag file corrupted", checksum, h.checksum)
	}

	return &Snapshot{h: h, data: data}, nil
}

// Test reports whether the flag is set in the mapped file.
func (s *Snapshot) Test(id uint32) (bool, error) {
	wordIndex, bitOffset := flagbit.Locate[uint16](id)
	if wordIndex >= int(s.h.wordCount) {
		return false, &flagbit.OutOfRangeError{ID: id, WordIndex: wordIndex, Words: int(s.h.wordCount)}
	}
	w := binary.LittleEndian.Uint16(s.data[fileHeaderSize+2*wordIndex:])
	return w&(1<<bitOffset) != 0, nil
}

// WordCount returns the number of stored words.
func (s *Snapshot) WordCount() int {
	return int(s.h.wordCount)
}

// Words decodes the mapped payload into a fresh word array.
func (s *Snapshot) Words() []uint16 {
	return decodeWords(s.data[fileHeaderSize : fileHeaderSize+2*int(s.h.wordCount)])
}

// Close unmaps the file.  The Snapshot must not be used afterwards.
func (s *Snapshot) Close() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
