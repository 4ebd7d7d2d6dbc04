// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoder is created on first use and reused across calls. zstd.Decoder
// is safe for concurrent use with DecodeAll.
var zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
})

// Zstd decodes zstandard frames for archives whose compressed chunks have
// been produced with zstandard instead of FastLZ.
var Zstd Decompressor = DecompressorFunc(decompressZstd)

// decompressZstd decodes the zstandard frame in src into dst
func decompressZstd(src, dst []byte) (int, error) {
	dec, err := zstdDecoder()
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: cannot create decoder: %w", err)
	}
	// capping the capacity makes DecodeAll reallocate instead of writing
	// past len(dst). A reallocated result is copied back.
	out, err := dec.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(out) > len(dst) {
		return 0, fmt.Errorf("zstd decompress: %d bytes do not fit into %d", len(out), len(dst))
	}
	return copy(dst, out), nil
}
