// Copyright 2026 The flagbit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package flagfile persists canonical flag storage (16-bit little-endian
// words) to a small self-describing file format with a checksummed,
// optionally zstd-compressed payload.  The byte layout is the compatibility
// boundary with whatever save format embeds the words: writer and reader
// must agree on it exactly, and this package is that agreement.
package flagfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgryski/go-farm"
	"github.com/klauspost/compress/zstd"
)

// Option configures Write and Save.
type Option func(*options)

type options struct {
	codec  uint16
	logger *slog.Logger
}

// WithZstd compresses the word payload with zstd.  Compressed files can be
// read with Read and Load but not mapped with OpenSnapshot.
func WithZstd() Option {
	return func(opts *options) {
		opts.codec = codecZstd
	}
}

// WithLogger sets an optional logger used for save progress updates.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func applyOptions(opts []Option) options {
	options := options{
		codec:  codecRaw,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func encodeWords(words []uint16) []byte {
	payload := make([]byte, 2*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint16(payload[2*i:], w)
	}
	return payload
}

func decodeWords(payload []byte) []uint16 {
	words := make([]uint16, len(payload)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(payload[2*i:])
	}
	return words
}

// Write serializes words to w: a fixed header followed by the payload.
// The checksum stored in the header is computed over the uncompressed
// payload, so corruption is detected after decompression too.
func Write(w io.Writer, words []uint16, opts ...Option) error {
	options := applyOptions(opts)

	payload := encodeWords(words)
	checksum := farm.Hash64(payload)

	if options.codec == codecZstd {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("zstd.NewWriter: %w", err)
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("zstd encoder close: %w", err)
		}
	}

	h := newFileHeader(options.codec, len(words), checksum)
	var headerBuf [fileHeaderSize]byte
	if err := h.MarshalTo(headerBuf[:]); err != nil {
		return fmt.Errorf("fileHeader.MarshalTo: %w", err)
	}

	if _, err := w.Write(headerBuf[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}

// Read deserializes a flag file written by Write, returning the word array.
func Read(r io.Reader) ([]uint16, error) {
	var headerBuf [fileHeaderSize]byte
	if _, err := io.ReadFull(r, headerBuf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var h fileHeader
	if err := h.UnmarshalBytes(headerBuf[:]); err != nil {
		return nil, fmt.Errorf("fileHeader.UnmarshalBytes: %w", err)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if h.codec == codecZstd {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd.NewReader: %w", err)
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
	}

	if len(payload) != 2*int(h.wordCount) {
		return nil, fmt.Errorf("payload is %d bytes, expected %d for %d words", len(payload), 2*h.wordCount, h.wordCount)
	}

	if checksum := farm.Hash64(payload); checksum != h.checksum {
		return nil, fmt.Errorf("checksum failed (%x != %x): flag file corrupted", checksum, h.checksum)
	}

	return decodeWords(payload), nil
}

// Save writes words to path atomically: the file is built under a temporary
// name in the same directory and renamed into place, so a crash mid-save
// never leaves a truncated flag file behind.
func Save(path string, words []uint16, opts ...Option) error {
	options := applyOptions(opts)

	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "flagbit.*.sav")
	if err != nil {
		return fmt.Errorf("CreateTemp (may need permissions for %s): %w", dir, err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := Write(f, words, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	options.logger.Info("flag file saved", "path", path, "words", len(words), "compressed", options.codec == codecZstd)
	return nil
}

// Load reads the flag file at path.
func Load(path string) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
