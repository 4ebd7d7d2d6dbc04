// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4Block decodes LZ4 blocks (not frames) for archives whose compressed
// chunks have been produced with LZ4 block compression instead of FastLZ.
var LZ4Block Decompressor = DecompressorFunc(decompressLZ4Block)

// decompressLZ4Block decodes the lz4 block in src into dst
func decompressLZ4Block(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return n, fmt.Errorf("lz4 decompress: %w", err)
	}
	return n, nil
}
