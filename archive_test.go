// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack_test

import (
	"bytes"

	sixpack "github.com/hashicorp/go-sixpack"
	"github.com/hashicorp/go-sixpack/internal/adler32"
)

// signature of 6pack archives
var signature = []byte{137, '6', 'P', 'K', 13, 10, 26, 10}

// testArchive assembles 6pack archives in memory
type testArchive struct {
	buf bytes.Buffer
}

func newTestArchive() *testArchive {
	a := &testArchive{}
	a.buf.Write(signature)
	return a
}

// chunk appends a chunk with a valid checksum over payload.
func (a *testArchive) chunk(id, options uint16, extra uint32, payload []byte) *testArchive {
	return a.rawChunk(sixpack.ChunkHeader{
		ID:       id,
		Options:  options,
		Size:     uint32(len(payload)),
		Checksum: adler32.Checksum(payload),
		Extra:    extra,
	}, payload)
}

// rawChunk appends hdr followed by payload without any adjustment.
func (a *testArchive) rawChunk(hdr sixpack.ChunkHeader, payload []byte) *testArchive {
	a.buf.Write(hdr.AppendBinary(nil))
	a.buf.Write(payload)
	return a
}

// file appends a file entry for name announcing size bytes.
func (a *testArchive) file(name string, size int) *testArchive {
	entry := sixpack.FileEntry{Size: uint32(size), Name: name}
	return a.chunk(sixpack.ChunkFileEntry, 0, 0, entry.AppendBinary(nil))
}

// stored appends a stored data chunk.
func (a *testArchive) stored(data []byte) *testArchive {
	return a.chunk(sixpack.ChunkFileData, sixpack.EncodingStored, uint32(len(data)), data)
}

// compressed appends a compressed data chunk decoding to size bytes.
func (a *testArchive) compressed(block []byte, size int) *testArchive {
	return a.chunk(sixpack.ChunkFileData, sixpack.EncodingCompressed, uint32(size), block)
}

// raw appends b as is.
func (a *testArchive) raw(b []byte) *testArchive {
	a.buf.Write(b)
	return a
}

func (a *testArchive) bytes() []byte {
	return bytes.Clone(a.buf.Bytes())
}

func (a *testArchive) reader() *bytes.Reader {
	return bytes.NewReader(a.bytes())
}

// fastlzLiterals encodes data as a FastLZ level 1 block that consists of
// literal runs only.
func fastlzLiterals(data []byte) []byte {
	var out []byte
	for len(data) > 0 {
		n := len(data)
		if n > 32 {
			n = 32
		}
		out = append(out, byte(n-1))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return out
}
