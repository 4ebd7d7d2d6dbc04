// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	sixpack "github.com/hashicorp/go-sixpack"
)

func TestDecodeChunkHeader(t *testing.T) {
	b := []byte{
		0x11, 0x00, // id
		0x01, 0x00, // options
		0x78, 0x56, 0x34, 0x12, // size
		0xef, 0xbe, 0xad, 0xde, // checksum
		0x00, 0x00, 0x01, 0x00, // extra
	}
	hdr := sixpack.DecodeChunkHeader(b)
	require.Equal(t, sixpack.ChunkHeader{
		ID:       sixpack.ChunkFileData,
		Options:  sixpack.EncodingCompressed,
		Size:     0x12345678,
		Checksum: 0xdeadbeef,
		Extra:    65536,
	}, hdr)

	encoded, err := hdr.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, b, encoded)
}

func TestChunkHeaderRoundTrip(t *testing.T) {
	headers := []sixpack.ChunkHeader{
		{},
		{ID: math.MaxUint16, Options: math.MaxUint16, Size: math.MaxUint32, Checksum: math.MaxUint32, Extra: math.MaxUint32},
		{ID: sixpack.ChunkFileEntry, Size: 19, Checksum: 0x11e60398},
	}
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		headers = append(headers, sixpack.ChunkHeader{
			ID:       uint16(rnd.Uint32()),
			Options:  uint16(rnd.Uint32()),
			Size:     rnd.Uint32(),
			Checksum: rnd.Uint32(),
			Extra:    rnd.Uint32(),
		})
	}

	for _, hdr := range headers {
		b := hdr.AppendBinary(nil)
		require.Len(t, b, sixpack.ChunkHeaderSize)

		var decoded sixpack.ChunkHeader
		require.NoError(t, decoded.UnmarshalBinary(b))
		require.Equal(t, hdr, decoded)
	}
}

func TestChunkHeaderUnmarshalShort(t *testing.T) {
	var hdr sixpack.ChunkHeader
	require.Error(t, hdr.UnmarshalBinary(make([]byte, sixpack.ChunkHeaderSize-1)))
}

func TestChunkHeaderString(t *testing.T) {
	hdr := sixpack.ChunkHeader{ID: 17, Options: 1, Size: 10, Checksum: 0xabc, Extra: 20}
	require.Equal(t, "id=17 options=1 size=10 checksum=00000ABC extra=20", hdr.String())
}
