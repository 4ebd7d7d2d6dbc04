// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"encoding/binary"
	"fmt"
)

// ChunkHeaderSize is the size of an encoded [ChunkHeader].
const ChunkHeaderSize = 16

// Chunk ids known to the extraction.
const (
	ChunkFileEntry uint16 = 1
	ChunkFileData  uint16 = 17
)

// Encodings of a file data chunk, stored in [ChunkHeader.Options].
const (
	EncodingStored     uint16 = 0
	EncodingCompressed uint16 = 1
)

// ChunkHeader describes the payload that immediately follows it in the archive.
//
// Layout, all fields little-endian:
//
//	offset 0  u16 id
//	offset 2  u16 options
//	offset 4  u32 size      payload length in the archive
//	offset 8  u32 checksum  Adler-32 of the payload as stored
//	offset 12 u32 extra     decompressed length of compressed payloads
type ChunkHeader struct {
	ID       uint16
	Options  uint16
	Size     uint32
	Checksum uint32
	Extra    uint32
}

// DecodeChunkHeader decodes the first [ChunkHeaderSize] bytes of b. No
// validation of the values is done. It panics if b is too short.
func DecodeChunkHeader(b []byte) ChunkHeader {
	_ = b[ChunkHeaderSize-1] // bounds check hint
	return ChunkHeader{
		ID:       binary.LittleEndian.Uint16(b[0:2]),
		Options:  binary.LittleEndian.Uint16(b[2:4]),
		Size:     binary.LittleEndian.Uint32(b[4:8]),
		Checksum: binary.LittleEndian.Uint32(b[8:12]),
		Extra:    binary.LittleEndian.Uint32(b[12:16]),
	}
}

// AppendBinary appends the encoded header to b.
func (h ChunkHeader) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint16(b, h.ID)
	b = binary.LittleEndian.AppendUint16(b, h.Options)
	b = binary.LittleEndian.AppendUint32(b, h.Size)
	b = binary.LittleEndian.AppendUint32(b, h.Checksum)
	b = binary.LittleEndian.AppendUint32(b, h.Extra)
	return b
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (h ChunkHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, ChunkHeaderSize)), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
func (h *ChunkHeader) UnmarshalBinary(b []byte) error {
	if len(b) < ChunkHeaderSize {
		return fmt.Errorf("chunk header needs %d bytes, got %d", ChunkHeaderSize, len(b))
	}
	*h = DecodeChunkHeader(b)
	return nil
}

// String returns a short description for logging.
func (h ChunkHeader) String() string {
	return fmt.Sprintf("id=%d options=%d size=%d checksum=%08X extra=%d", h.ID, h.Options, h.Size, h.Checksum, h.Extra)
}
